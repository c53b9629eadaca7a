package batch

import (
	"context"
	"errors"

	"github.com/fwojciec/feeddistill"
)

var _ feeddistill.Fetcher = (*AutoFetcher)(nil)

// AutoFetcher picks between a plain HTTP fetch and a browser fetch per URL.
//
// Decision flow:
//   - HTTP HTML distills to at least one item → use it
//   - HTTP HTML is an empty app shell or unsupported → render with the browser
//   - Browser fails after HTTP succeeded → use the HTTP HTML (best effort)
//   - HTTP fails → use the browser
type AutoFetcher struct {
	HTTP     feeddistill.Fetcher
	Browser  feeddistill.Fetcher
	Registry feeddistill.DistillerRegistry
}

// Fetch returns the first HTML that carries a distillable timeline.
func (f *AutoFetcher) Fetch(ctx context.Context, url string) (string, error) {
	httpHTML, httpErr := f.HTTP.Fetch(ctx, url)
	if httpErr == nil && f.hasItems(url, httpHTML) {
		return httpHTML, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := f.Browser.Fetch(ctx, url)
	if err != nil {
		if httpErr == nil {
			return httpHTML, nil
		}
		return "", err
	}
	return html, nil
}

// hasItems reports whether html is a supported page with timeline content.
// The reduced level is enough to tell and skips the per-item metadata.
func (f *AutoFetcher) hasItems(url, html string) bool {
	page := feeddistill.Page{URL: url, HTML: html}
	d, _ := f.Registry.Lookup(page)
	if d == nil {
		return false
	}
	dist, ok := d.Distill(page, feeddistill.LevelReduced)
	return ok && len(dist.Items) > 0
}

// Close closes both underlying fetchers.
func (f *AutoFetcher) Close() error {
	return errors.Join(f.HTTP.Close(), f.Browser.Close())
}
