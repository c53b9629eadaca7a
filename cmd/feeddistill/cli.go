package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/batch"
	"github.com/fwojciec/feeddistill/rod"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	Logger     *slog.Logger
	Runner     *batch.Runner
	Summarizer feeddistill.Summarizer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Distill   DistillCmd   `cmd:"" help:"Distill timeline pages into plain text"`
	Summarize SummarizeCmd `cmd:"" help:"Distill a timeline page and summarize it with Gemini"`
}

// Options are the flags shared by every command that distills pages.
type Options struct {
	Level       string        `short:"l" default:"full" env:"FEEDDISTILL_LEVEL" help:"Detail level: full or reduced"`
	URL         string        `short:"u" name:"url" help:"Page URL for a file or stdin source"`
	MaxTokens   int           `name:"max-tokens" env:"FEEDDISTILL_MAX_TOKENS" help:"Token budget per page (0 disables)"`
	Tokenizer   string        `enum:"estimate,gemini" default:"estimate" help:"Token counter: estimate or gemini"`
	Fetcher     string        `enum:"auto,http,rod" default:"auto" help:"How to fetch URL sources: auto, http or rod"`
	Headful     bool          `env:"FEEDDISTILL_HEADFUL" help:"Show the Chrome window while fetching"`
	Profile     string        `type:"path" env:"FEEDDISTILL_CHROME_PROFILE" help:"Chrome user data directory with a signed-in X session"`
	Fallback    bool          `help:"Extract generic article content from unsupported pages"`
	Extractor   string        `enum:"trafilatura,readability" default:"trafilatura" help:"Extractor for --fallback"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent page limit"`
	RateLimit   float64       `name:"rate-limit" default:"1" help:"Requests per second per domain"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Verbose     bool          `short:"v" help:"Log progress to stderr"`
}

// BrowserOptions maps the browser flags onto the Chrome manager.
func (o *Options) BrowserOptions() []rod.ManagerOption {
	return []rod.ManagerOption{
		rod.WithHeadless(!o.Headful),
		rod.WithUserDataDir(o.Profile),
	}
}

// DistillCmd is the "distill" subcommand.
type DistillCmd struct {
	Options `embed:""`

	Format  string   `short:"f" enum:"text,json,yaml" default:"text" help:"Output format: text, json or yaml"`
	Out     string   `short:"o" help:"Write one file per source into this directory instead of stdout"`
	Sources []string `arg:"" optional:"" name:"source" help:"File path, - for stdin, or http(s) URL (default: stdin)"`
}

// DefaultSummaryTokens bounds the page handed to the summarizer when no
// budget is configured.
const DefaultSummaryTokens = 100000

// SummarizeCmd is the "summarize" subcommand.
type SummarizeCmd struct {
	Options `embed:""`

	Model  string `default:"gemini-2.5-flash" env:"GEMINI_MODEL" help:"Gemini model"`
	Prompt string `short:"p" help:"Instruction for the summary"`
	Source string `arg:"" optional:"" default:"-" help:"File path, - for stdin, or http(s) URL"`
}
