package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/feeddistill"
)

// Ensure LoggingRegistry implements feeddistill.DistillerRegistry.
var _ feeddistill.DistillerRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a DistillerRegistry with logging for site detection.
// Distillers returned by Lookup are wrapped with a LoggingDistiller.
type LoggingRegistry struct {
	next   feeddistill.DistillerRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next feeddistill.DistillerRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(site feeddistill.Site) feeddistill.Distiller {
	return r.next.Get(site)
}

// Lookup detects the site, logs it, and returns the matching distiller.
func (r *LoggingRegistry) Lookup(page feeddistill.Page) (feeddistill.Distiller, feeddistill.Site) {
	begin := time.Now()
	d, site := r.next.Lookup(page)
	siteName := string(site)
	if site == feeddistill.SiteUnknown {
		siteName = "(unknown)"
	}
	r.logger.Info("site detection",
		"url", page.URL,
		"site", siteName,
		"duration", time.Since(begin),
	)
	if d == nil {
		return nil, site
	}
	return NewLoggingDistiller(d, r.logger), site
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(site feeddistill.Site, distiller feeddistill.Distiller) {
	r.next.Register(site, distiller)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []feeddistill.Site {
	return r.next.List()
}
