package goquery

import (
	"sort"

	"github.com/fwojciec/feeddistill"
)

var _ feeddistill.DistillerRegistry = (*Registry)(nil)

// Registry manages site-specific distillers and detects the site of a page
// to pick one.
type Registry struct {
	detector   feeddistill.SiteDetector
	distillers map[feeddistill.Site]feeddistill.Distiller
}

// NewRegistry creates a new empty Registry using the given detector.
func NewRegistry(detector feeddistill.SiteDetector) *Registry {
	return &Registry{
		detector:   detector,
		distillers: make(map[feeddistill.Site]feeddistill.Distiller),
	}
}

// NewDefaultRegistry creates a Registry with every built-in distiller registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector())
	r.Register(feeddistill.SiteX, NewDistiller())
	return r
}

// Get returns the distiller for a site.
// Returns nil if no distiller is registered for the site.
func (r *Registry) Get(site feeddistill.Site) feeddistill.Distiller {
	return r.distillers[site]
}

// Lookup detects the site of the page and returns its distiller.
func (r *Registry) Lookup(page feeddistill.Page) (feeddistill.Distiller, feeddistill.Site) {
	site := r.detector.Detect(page)
	if site == feeddistill.SiteUnknown {
		return nil, feeddistill.SiteUnknown
	}
	d, ok := r.distillers[site]
	if !ok {
		return nil, feeddistill.SiteUnknown
	}
	return d, site
}

// Register adds a distiller for a site.
// If a distiller is already registered for the site, it is replaced.
func (r *Registry) Register(site feeddistill.Site, distiller feeddistill.Distiller) {
	r.distillers[site] = distiller
}

// List returns all registered sites in name order.
func (r *Registry) List() []feeddistill.Site {
	sites := make([]feeddistill.Site, 0, len(r.distillers))
	for s := range r.distillers {
		sites = append(sites, s)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i] < sites[j] })
	return sites
}
