package mock

import "github.com/fwojciec/feeddistill"

var _ feeddistill.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of feeddistill.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*feeddistill.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*feeddistill.ExtractResult, error) {
	return e.ExtractFn(html)
}
