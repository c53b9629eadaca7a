package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/feeddistill"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements feeddistill.Extractor at compile time.
var _ feeddistill.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main content of pages that
// no site distiller supports. Comment sections are dropped; links are kept
// so the converted Markdown still points at its sources.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			IncludeLinks:    true,
		},
	}
}

// Extract processes raw HTML and returns the main content. The title falls
// back to the site name when the page has none.
func (e *Extractor) Extract(rawHTML string) (*feeddistill.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, feeddistill.Errorf(feeddistill.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	title := result.Metadata.Title
	if title == "" {
		title = result.Metadata.Sitename
	}

	return &feeddistill.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
