package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/batch"
	"github.com/fwojciec/feeddistill/gemini"
	"github.com/fwojciec/feeddistill/goquery"
	"github.com/fwojciec/feeddistill/htmltomarkdown"
	fdhttp "github.com/fwojciec/feeddistill/http"
	"github.com/fwojciec/feeddistill/readability"
	"github.com/fwojciec/feeddistill/rod"
	fdslog "github.com/fwojciec/feeddistill/slog"
	"github.com/fwojciec/feeddistill/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	if err := LoadEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// LoadEnv reads a dotenv file into the environment without overriding
// variables that are already set. A missing file is not an error; the
// environment may already be configured.
func LoadEnv(filename string) error {
	err := godotenv.Load(filename)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}
	return nil
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" source.
	Stdin io.Reader

	// Services for end-to-end testing. When nil they are built from flags.
	Fetcher    feeddistill.Fetcher
	Summarizer feeddistill.Summarizer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("feeddistill"),
		kong.Description("Distill X timelines into plain text for AI summarization"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'feeddistill --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	var opts *Options
	var sources []string
	switch {
	case strings.HasPrefix(kongCtx.Command(), "distill"):
		opts, sources = &cli.Distill.Options, cli.Distill.Sources
	case strings.HasPrefix(kongCtx.Command(), "summarize"):
		opts, sources = &cli.Summarize.Options, []string{cli.Summarize.Source}
		if opts.MaxTokens <= 0 {
			opts.MaxTokens = DefaultSummaryTokens
		}
	default:
		return kongCtx.Run(deps)
	}

	deps.Logger = newLogger(stderr, opts.Verbose)
	registry := fdslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), deps.Logger)

	runner := &batch.Runner{
		Registry:    registry,
		Converter:   htmltomarkdown.NewConverter(),
		Fallback:    opts.Fallback,
		Limiter:     batch.NewDomainLimiter(opts.RateLimit),
		MaxTokens:   opts.MaxTokens,
		Concurrency: opts.Concurrency,
		Logger: func(format string, args ...any) {
			deps.Logger.Warn(fmt.Sprintf(format, args...))
		},
	}

	switch opts.Extractor {
	case "readability":
		runner.Extractor = readability.NewExtractor()
	default:
		runner.Extractor = trafilatura.NewExtractor()
	}

	if opts.Tokenizer == "gemini" {
		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		runner.TokenCounter = counter
	}

	if fetches(sources) {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher, err = newFetcher(opts, registry)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --fetcher=http")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
		}
		runner.Fetcher = fdslog.NewLoggingFetcher(fetcher, deps.Logger)
	}
	deps.Runner = runner

	if strings.HasPrefix(kongCtx.Command(), "summarize") {
		summarizer := m.Summarizer
		if summarizer == nil {
			summarizer, err = newSummarizer(ctx, stderr, cli.Summarize.Model)
			if err != nil {
				return err
			}
		}
		deps.Summarizer = fdslog.NewLoggingSummarizer(summarizer, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting; the tokenizer package supports
// fewer models than the API.
const tokenizerModel = "gemini-2.5-flash"

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newFetcher builds the fetcher named by --fetcher.
func newFetcher(opts *Options, registry feeddistill.DistillerRegistry) (feeddistill.Fetcher, error) {
	httpFetcher := fdhttp.NewFetcher(fdhttp.WithTimeout(opts.Timeout))
	if opts.Fetcher == "http" {
		return httpFetcher, nil
	}

	manager, err := rod.NewBrowserManager(opts.BrowserOptions()...)
	if err != nil {
		return nil, err
	}
	rodFetcher := rod.NewFetcherWithManager(manager, rod.WithFetchTimeout(opts.Timeout))
	if opts.Fetcher == "rod" {
		return rodFetcher, nil
	}

	return &batch.AutoFetcher{
		HTTP:     httpFetcher,
		Browser:  rodFetcher,
		Registry: registry,
	}, nil
}

func newSummarizer(ctx context.Context, stderr io.Writer, model string) (feeddistill.Summarizer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return gemini.NewSummarizer(client, gemini.WithModel(model)), nil
}
