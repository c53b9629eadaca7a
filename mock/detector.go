package mock

import "github.com/fwojciec/feeddistill"

var _ feeddistill.SiteDetector = (*SiteDetector)(nil)

// SiteDetector is a mock implementation of feeddistill.SiteDetector.
type SiteDetector struct {
	DetectFn func(page feeddistill.Page) feeddistill.Site
}

func (d *SiteDetector) Detect(page feeddistill.Page) feeddistill.Site {
	return d.DetectFn(page)
}
