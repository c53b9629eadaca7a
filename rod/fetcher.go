package rod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/feeddistill"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// Ensure Fetcher implements feeddistill.Fetcher at compile time.
var _ feeddistill.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a whole fetch, from navigation to serialization.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRenderTimeout is how long Fetch waits for timeline items to appear
// after the page has loaded.
const DefaultRenderTimeout = 15 * time.Second

// TimelineSelector matches the first rendered timeline item. Timelines are
// filled in by scripts after the load event.
const TimelineSelector = `[data-testid="primaryColumn"] article`

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager       *BrowserManager
	stealth       bool
	fetchTimeout  time.Duration
	renderTimeout time.Duration
	waitSelector  string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout bounds each fetch. A zero duration relies on the
// caller's context alone.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithRenderTimeout sets how long to wait for timeline items after load.
// A zero duration skips the wait.
func WithRenderTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.renderTimeout = d
	}
}

// WithWaitSelector sets the element to wait for after load.
func WithWaitSelector(selector string) FetcherOption {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// WithStealth toggles stealth pages, which hide common automation
// fingerprints. Enabled by default.
func WithStealth(enabled bool) FetcherOption {
	return func(f *Fetcher) {
		f.stealth = enabled
	}
}

// NewFetcher creates a new Fetcher backed by a recycling headless browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	return NewFetcherWithManager(manager, opts...), nil
}

// NewFetcherWithManager creates a Fetcher that uses an existing browser
// manager. Closing the Fetcher closes the manager.
func NewFetcherWithManager(manager *BrowserManager, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		manager:       manager,
		stealth:       true,
		fetchTimeout:  DefaultFetchTimeout,
		renderTimeout: DefaultRenderTimeout,
		waitSelector:  TimelineSelector,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to the URL and returns the rendered HTML. It returns the
// HTML even when no timeline item appears before the render timeout, so
// callers can still decide whether the page is supported.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.manager.Closed() {
		return "", feeddistill.Errorf(feeddistill.EINVALID, "fetcher is closed")
	}

	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	page, err := f.newPage()
	if err != nil {
		return "", fmt.Errorf("creating page: %w", err)
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("navigating to %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("waiting for %s to load: %w", url, err)
	}

	if err := f.waitRendered(ctx, page); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading html: %w", err)
	}
	return html, nil
}

// waitRendered waits for the wait selector. Only cancellation of the
// caller's context is an error; a render timeout is not.
func (f *Fetcher) waitRendered(ctx context.Context, page *rod.Page) error {
	if f.renderTimeout <= 0 || f.waitSelector == "" {
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, f.renderTimeout)
	defer cancel()

	_, err := page.Context(waitCtx).Element(f.waitSelector)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("waiting for timeline: %w", err)
	}
	return nil
}

func (f *Fetcher) newPage() (*rod.Page, error) {
	browser := f.manager.Browser()
	if browser == nil {
		return nil, errors.New("no active browser")
	}
	if f.stealth {
		return stealth.Page(browser)
	}
	return browser.Page(proto.TargetCreateTarget{})
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// LauncherPID returns the process ID of the current browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
