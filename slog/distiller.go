package slog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/feeddistill"
)

// Ensure LoggingDistiller implements feeddistill.Distiller.
var _ feeddistill.Distiller = (*LoggingDistiller)(nil)

// LoggingDistiller wraps a Distiller with logging of each pass.
type LoggingDistiller struct {
	next   feeddistill.Distiller
	logger *slog.Logger
}

// NewLoggingDistiller creates a new LoggingDistiller.
func NewLoggingDistiller(next feeddistill.Distiller, logger *slog.Logger) *LoggingDistiller {
	return &LoggingDistiller{next: next, logger: logger}
}

// Distill logs the outcome of the pass and delegates to the wrapped distiller.
// The hash identifies the rendered artifact so repeated passes over the
// same page can be compared in logs.
func (d *LoggingDistiller) Distill(page feeddistill.Page, level feeddistill.Level) (dist *feeddistill.Distillation, ok bool) {
	defer func(begin time.Time) {
		if !ok {
			d.logger.Info("distill",
				"url", page.URL,
				"detail", level,
				"supported", false,
				"duration", time.Since(begin),
			)
			return
		}
		text := dist.Text()
		d.logger.Info("distill",
			"url", page.URL,
			"site", dist.Site,
			"detail", dist.Level,
			"supported", true,
			"users", len(dist.Users),
			"items", len(dist.Items),
			"bytes", len(text),
			"hash", fmt.Sprintf("%016x", xxhash.Sum64String(text)),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.Distill(page, level)
}
