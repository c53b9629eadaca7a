package mock

import "github.com/fwojciec/feeddistill"

var _ feeddistill.Converter = (*Converter)(nil)

// Converter is a mock implementation of feeddistill.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
