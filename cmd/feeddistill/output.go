package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/batch"
	"gopkg.in/yaml.v3"
)

// Record is the structured form of one result in json and yaml output.
type Record struct {
	Source    string             `json:"source" yaml:"source"`
	URL       string             `json:"url,omitempty" yaml:"url,omitempty"`
	Site      feeddistill.Site   `json:"site,omitempty" yaml:"site,omitempty"`
	Level     feeddistill.Level  `json:"level" yaml:"level"`
	Fallback  bool               `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Title     string             `json:"title,omitempty" yaml:"title,omitempty"`
	Hash      string             `json:"hash,omitempty" yaml:"hash,omitempty"`
	Tokens    int                `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	Truncated bool               `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Notice    string             `json:"notice,omitempty" yaml:"notice,omitempty"`
	Users     []feeddistill.User `json:"users,omitempty" yaml:"users,omitempty"`
	Items     []feeddistill.Item `json:"items,omitempty" yaml:"items,omitempty"`
	Text      string             `json:"text,omitempty" yaml:"text,omitempty"`
	Error     string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewRecord converts a batch result into a Record.
func NewRecord(r batch.Result, level feeddistill.Level) Record {
	rec := Record{
		Source:    r.Source.Name,
		URL:       r.Source.URL,
		Site:      r.Site,
		Level:     level,
		Fallback:  r.Fallback,
		Title:     r.Title,
		Hash:      r.Hash,
		Tokens:    r.Tokens,
		Truncated: r.Truncated,
		Notice:    r.Notice,
		Text:      r.Text,
	}
	if rec.Source == "" {
		rec.Source = r.Source.URL
	}
	if r.Distillation != nil {
		rec.Users = r.Distillation.Users
		rec.Items = r.Distillation.Items
	}
	if r.Err != nil {
		rec.Error = feeddistill.ErrorMessage(r.Err)
	}
	return rec
}

// writeResults writes results to w in the given format.
func writeResults(w io.Writer, format string, results []batch.Result, level feeddistill.Level) error {
	switch format {
	case "json", "yaml":
		records := make([]Record, 0, len(results))
		for _, r := range results {
			records = append(records, NewRecord(r, level))
		}
		if format == "json" {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, results)
	}
}

// writeText writes the artifacts of successful results. With more than one
// source each artifact is preceded by a header naming its source.
func writeText(w io.Writer, results []batch.Result) error {
	var ok []batch.Result
	for _, r := range results {
		if r.Err == nil {
			ok = append(ok, r)
		}
	}

	for i, r := range ok {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if len(ok) > 1 {
			if _, err := fmt.Fprintf(w, "==> %s <==\n", r.Source.Name); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, r.Text); err != nil {
			return err
		}
	}
	return nil
}
