package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/feeddistill"
)

var _ feeddistill.SiteDetector = (*Detector)(nil)

// xHosts are the hostnames that serve X timelines, after stripping
// "www." and "mobile." prefixes.
var xHosts = map[string]bool{
	"x.com":       true,
	"twitter.com": true,
}

// xExcludedPaths are routes on X hosts that never render a timeline.
var xExcludedPaths = []string{
	"/i/flow/",
	"/i/oauth",
	"/login",
	"/logout",
	"/settings",
	"/compose",
}

// Detector identifies supported page templates from the page URL and
// structural landmarks in the document. Landmarks are tied to the site's
// current markup and will need updating when it changes.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes the page and returns the identified site.
// Returns SiteUnknown if the page matches no supported template.
func (d *Detector) Detect(page feeddistill.Page) feeddistill.Site {
	if page.URL != "" && !isXURL(page.URL) {
		return feeddistill.SiteUnknown
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return feeddistill.SiteUnknown
	}
	return d.DetectDocument(doc, page.URL)
}

// DetectDocument is like Detect for an already parsed document.
// With a URL, the X app root is enough. Without one, the document must
// also show a timeline or identify itself as X.
func (d *Detector) DetectDocument(doc *goquery.Document, rawURL string) feeddistill.Site {
	if !d.hasSelector(doc, selAppRoot) {
		return feeddistill.SiteUnknown
	}

	if rawURL != "" {
		if isXURL(rawURL) {
			return feeddistill.SiteX
		}
		return feeddistill.SiteUnknown
	}

	if d.hasSelector(doc, selPrimaryColumn) || d.hasXMetadata(doc) {
		return feeddistill.SiteX
	}

	return feeddistill.SiteUnknown
}

// Supported reports whether the page matches any supported template.
func (d *Detector) Supported(page feeddistill.Page) bool {
	return d.Detect(page) != feeddistill.SiteUnknown
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}

// hasXMetadata checks the site name and canonical link metadata.
func (d *Detector) hasXMetadata(doc *goquery.Document) bool {
	siteName := strings.ToLower(doc.Find(`meta[property="og:site_name"]`).AttrOr("content", ""))
	if siteName == "x" || siteName == "twitter" {
		return true
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok && isXURL(canonical) {
		return true
	}
	return false
}

// isXURL reports whether the URL points at an X route that can show a timeline.
func isXURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "mobile.")
	if !xHosts[host] {
		return false
	}

	for _, prefix := range xExcludedPaths {
		if strings.HasPrefix(u.Path, prefix) {
			return false
		}
	}
	return true
}
