package mock

import "github.com/fwojciec/feeddistill"

var _ feeddistill.Distiller = (*Distiller)(nil)

// Distiller is a mock implementation of feeddistill.Distiller.
type Distiller struct {
	DistillFn func(page feeddistill.Page, level feeddistill.Level) (*feeddistill.Distillation, bool)
}

func (d *Distiller) Distill(page feeddistill.Page, level feeddistill.Level) (*feeddistill.Distillation, bool) {
	return d.DistillFn(page, level)
}

var _ feeddistill.DistillerRegistry = (*DistillerRegistry)(nil)

// DistillerRegistry is a mock implementation of feeddistill.DistillerRegistry.
type DistillerRegistry struct {
	GetFn      func(site feeddistill.Site) feeddistill.Distiller
	LookupFn   func(page feeddistill.Page) (feeddistill.Distiller, feeddistill.Site)
	RegisterFn func(site feeddistill.Site, distiller feeddistill.Distiller)
	ListFn     func() []feeddistill.Site
}

func (r *DistillerRegistry) Get(site feeddistill.Site) feeddistill.Distiller {
	return r.GetFn(site)
}

func (r *DistillerRegistry) Lookup(page feeddistill.Page) (feeddistill.Distiller, feeddistill.Site) {
	return r.LookupFn(page)
}

func (r *DistillerRegistry) Register(site feeddistill.Site, distiller feeddistill.Distiller) {
	r.RegisterFn(site, distiller)
}

func (r *DistillerRegistry) List() []feeddistill.Site {
	return r.ListFn()
}
