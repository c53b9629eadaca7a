package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/feeddistill"
)

// Ensure LoggingSummarizer implements feeddistill.Summarizer.
var _ feeddistill.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   feeddistill.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next feeddistill.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize logs input and output sizes and delegates to the wrapped summarizer.
func (s *LoggingSummarizer) Summarize(ctx context.Context, text, instruction string) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"bytes", len(text),
			"instruction", instruction != "",
			"summary_bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, text, instruction)
}
