package main

import (
	"io"
	"os"
	"strings"

	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/batch"
)

// isURL reports whether a source argument names a remote page.
func isURL(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// fetches reports whether any source argument needs a fetcher.
func fetches(args []string) bool {
	for _, arg := range args {
		if isURL(arg) {
			return true
		}
	}
	return false
}

// LoadSources turns source arguments into batch sources. Files and stdin
// are read eagerly and take pageURL as their page URL; URLs are fetched
// later by the runner. No arguments means stdin.
func LoadSources(args []string, pageURL string, stdin io.Reader) ([]batch.Source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]batch.Source, 0, len(args))
	readStdin := false
	for _, arg := range args {
		switch {
		case isURL(arg):
			sources = append(sources, batch.Source{Name: arg, URL: arg})

		case arg == "-":
			if readStdin {
				return nil, feeddistill.Errorf(feeddistill.EINVALID, "stdin can only be read once")
			}
			readStdin = true
			if stdin == nil {
				return nil, feeddistill.Errorf(feeddistill.EINVALID, "stdin is not available")
			}
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, err
			}
			src, err := fileSource("stdin", pageURL, data)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)

		default:
			data, err := os.ReadFile(arg)
			if os.IsNotExist(err) {
				return nil, feeddistill.Errorf(feeddistill.ENOTFOUND, "file %q not found", arg)
			}
			if err != nil {
				return nil, err
			}
			src, err := fileSource(arg, pageURL, data)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		}
	}
	return sources, nil
}

func fileSource(name, pageURL string, data []byte) (batch.Source, error) {
	if strings.TrimSpace(string(data)) == "" {
		return batch.Source{}, feeddistill.Errorf(feeddistill.EINVALID, "%s is empty", name)
	}
	return batch.Source{Name: name, URL: pageURL, HTML: string(data)}, nil
}
