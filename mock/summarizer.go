package mock

import (
	"context"

	"github.com/fwojciec/feeddistill"
)

var _ feeddistill.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of feeddistill.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text, instruction string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	return s.SummarizeFn(ctx, text, instruction)
}
