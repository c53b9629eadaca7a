// Package goquery implements page distillation and site detection on top
// of the goquery HTML query library.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/feeddistill"
)

var _ feeddistill.Distiller = (*Distiller)(nil)

// Distiller distills X timeline pages: home, search, lists, profiles and
// notifications. Distiller holds no per-pass state and is safe for
// concurrent use by multiple goroutines.
type Distiller struct {
	detector *Detector
}

// NewDistiller creates a new Distiller.
func NewDistiller() *Distiller {
	return &Distiller{detector: NewDetector()}
}

// Distill extracts the users and primary-column items of the page.
// Returns false if the page is not a supported X page.
func (d *Distiller) Distill(page feeddistill.Page, level feeddistill.Level) (*feeddistill.Distillation, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, false
	}
	if d.detector.DetectDocument(doc, page.URL) != feeddistill.SiteX {
		return nil, false
	}

	level = level.Normalize()
	items := distillPrimaryColumn(doc.Selection, level)
	users := distillSeenUsers(doc.Selection, level)

	return &feeddistill.Distillation{
		Site:  feeddistill.SiteX,
		Level: level,
		Users: users,
		Items: items,
	}, true
}

// DistillText is like Distill but returns the rendered text artifact.
func (d *Distiller) DistillText(page feeddistill.Page, level feeddistill.Level) (string, bool) {
	dist, ok := d.Distill(page, level)
	if !ok {
		return "", false
	}
	return dist.Text(), true
}
