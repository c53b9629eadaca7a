package feeddistill

// Distiller extracts readable text from one supported site's pages.
type Distiller interface {
	// Distill extracts the page content at the given level.
	// Returns false if the page is not supported; that is not an error,
	// it means there is nothing to distill. Distill never modifies the page.
	Distill(page Page, level Level) (*Distillation, bool)
}

// DistillerRegistry manages site-specific distillers.
type DistillerRegistry interface {
	// Get returns the distiller for a site.
	// Returns nil if no distiller is registered for the site.
	Get(site Site) Distiller

	// Lookup detects the site of a page and returns its distiller.
	// Returns nil and SiteUnknown if the page matches no registered site.
	Lookup(page Page) (Distiller, Site)

	// Register adds a distiller for a site.
	Register(site Site, distiller Distiller)

	// List returns all registered sites.
	List() []Site
}

// Distillation is the result of one distillation pass.
type Distillation struct {
	Site  Site  `json:"site" yaml:"site"`
	Level Level `json:"level" yaml:"level"`

	// Users are the distinct users seen on the page, in first-seen order.
	Users []User `json:"users" yaml:"users"`

	// Items are the distilled timeline items, in document order.
	Items []Item `json:"items" yaml:"items"`
}

// Fragments returns the non-empty rendered item fragments in document order.
func (d *Distillation) Fragments() []string {
	if d == nil {
		return nil
	}
	fragments := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		if item.Text != "" {
			fragments = append(fragments, item.Text)
		}
	}
	return fragments
}

// Text renders the distillation as the text artifact handed to a summarizer.
// A nil distillation renders as an artifact with empty sections.
func (d *Distillation) Text() string {
	if d == nil {
		return FormatArtifact("", "")
	}
	return FormatArtifact(FormatUsers(d.Users), FormatColumn(d.Fragments()))
}
