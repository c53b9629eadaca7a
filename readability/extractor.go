package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/feeddistill"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements feeddistill.Extractor at compile time.
var _ feeddistill.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the main content of pages that
// no site distiller supports.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// NewExtractorForURL creates an Extractor that resolves relative links
// against the page URL. An unparseable URL is ignored.
func NewExtractorForURL(rawURL string) *Extractor {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return &Extractor{}
	}
	return &Extractor{pageURL: u}
}

// Extract processes raw HTML and returns the main content.
// Returns ENOTFOUND if the page has no readable text.
func (e *Extractor) Extract(rawHTML string) (*feeddistill.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, feeddistill.Errorf(feeddistill.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.TextContent) == "" {
		return nil, feeddistill.Errorf(feeddistill.ENOTFOUND, "no readable content")
	}

	title := article.Title
	if title == "" {
		title = article.SiteName
	}

	return &feeddistill.ExtractResult{
		Title:       title,
		ContentHTML: article.Content,
	}, nil
}
