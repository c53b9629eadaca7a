// Package batch distills many timeline sources concurrently. It coordinates
// fetching, site detection, distillation, the generic fallback and token
// bounding for each source.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/feeddistill"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources processed at once.
const DefaultConcurrency = 4

// Runner distills sources. Every source runs its own distillation pass;
// passes share nothing but the fetcher and the rate limiter.
type Runner struct {
	Fetcher  feeddistill.Fetcher
	Registry feeddistill.DistillerRegistry

	// Extractor and Converter back the generic fallback for unsupported
	// pages. Both are required when Fallback is set.
	Extractor feeddistill.Extractor
	Converter feeddistill.Converter
	Fallback  bool

	Limiter feeddistill.DomainLimiter

	// TokenCounter measures artifacts against MaxTokens. It defaults to
	// feeddistill.EstimateCounter. A MaxTokens of zero disables bounding.
	TokenCounter feeddistill.TokenCounter
	MaxTokens    int

	Concurrency int
	RetryDelays []time.Duration

	// Logger, if set, receives retry messages.
	Logger LogFunc
}

// Source is one page to distill. HTML, when set, is used as is and URL only
// informs site detection; otherwise the page is fetched from URL.
type Source struct {
	Name string
	URL  string
	HTML string
}

func (s Source) label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.URL
}

// Result holds the outcome of distilling a single source.
type Result struct {
	Source Source

	// Site is the detected site. It is empty for fallback results.
	Site feeddistill.Site

	// Distillation is nil for fallback results and failures.
	Distillation *feeddistill.Distillation

	// Title is set by the generic fallback.
	Title    string
	Fallback bool

	// Text is the artifact, bounded to MaxTokens when a budget is set.
	Text string
	Hash string

	Tokens    int
	Truncated bool
	Notice    string

	Err error
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

type indexedResult struct {
	position int
	result   Result
}

// Run distills all sources at the given level and returns one result per
// source, in input order. Failures are reported per result; Run itself
// does not fail.
func (r *Runner) Run(ctx context.Context, sources []Source, level feeddistill.Level, progress ProgressFunc) []Result {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sources)
	resultCh := make(chan indexedResult, total)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, src := range sources {
			g.Go(func() error {
				resultCh <- indexedResult{position: i, result: r.process(gctx, src, level)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]Result, total)
	for ir := range resultCh {
		completed.Add(1)
		results[ir.position] = ir.result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Source:    ir.result.Source.label(),
		}
		if ir.result.Err != nil {
			event.Type = ProgressFailed
			event.Error = ir.result.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return results
}

// process acquires, distills and bounds a single source.
func (r *Runner) process(ctx context.Context, src Source, level feeddistill.Level) Result {
	result := Result{Source: src}

	html, err := r.acquire(ctx, src)
	if err != nil {
		result.Err = err
		return result
	}

	page := feeddistill.Page{URL: src.URL, HTML: html}
	if err := r.distill(page, level, &result); err != nil {
		result.Err = err
		return result
	}

	if err := r.bound(ctx, &result); err != nil {
		result.Err = err
		return result
	}

	result.Hash = ComputeHash(result.Text)
	return result
}

func (r *Runner) acquire(ctx context.Context, src Source) (string, error) {
	if src.HTML != "" {
		return src.HTML, nil
	}
	if src.URL == "" {
		return "", feeddistill.Errorf(feeddistill.EINVALID, "source %q has no content and no URL", src.Name)
	}
	if r.Fetcher == nil {
		return "", feeddistill.Errorf(feeddistill.EINVALID, "no fetcher configured for %s", src.URL)
	}

	if r.Limiter != nil {
		if err := r.Limiter.Wait(ctx, Host(src.URL)); err != nil {
			return "", err
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		return r.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetryDelays(ctx, src.URL, fetchFn, r.Logger, delays)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", src.URL, err)
	}
	return html, nil
}

// distill fills result from the site distiller, or from the generic
// fallback when no distiller supports the page.
func (r *Runner) distill(page feeddistill.Page, level feeddistill.Level, result *Result) error {
	if d, site := r.Registry.Lookup(page); d != nil {
		if dist, ok := d.Distill(page, level); ok {
			result.Site = site
			result.Distillation = dist
			result.Text = dist.Text()
			return nil
		}
	}

	if !r.Fallback || r.Extractor == nil || r.Converter == nil {
		return feeddistill.Errorf(feeddistill.ENOTSUPPORTED, "%s: nothing to distill", result.Source.label())
	}

	extracted, err := r.Extractor.Extract(page.HTML)
	if err != nil {
		return err
	}
	markdown, err := r.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return err
	}

	result.Fallback = true
	result.Title = extracted.Title
	result.Text = markdown
	return nil
}

func (r *Runner) bound(ctx context.Context, result *Result) error {
	if r.MaxTokens <= 0 {
		return nil
	}

	counter := r.TokenCounter
	if counter == nil {
		counter = feeddistill.EstimateCounter{}
	}

	bounded, err := feeddistill.Bound(ctx, result.Text, r.MaxTokens, counter)
	if err != nil {
		return err
	}

	result.Text = bounded.Text
	result.Tokens = bounded.Tokens
	result.Truncated = bounded.Truncated
	result.Notice = feeddistill.LongContentNotice(bounded)
	return nil
}
