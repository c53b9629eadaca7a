package feeddistill

// Page is a rendered document to distill.
type Page struct {
	// URL is the address the document was loaded from. It is optional;
	// when empty, support is decided from the markup alone.
	URL string

	// HTML is the rendered document.
	HTML string
}

// Site identifies a supported page template.
type Site string

// Supported sites.
const (
	SiteUnknown Site = ""
	SiteX       Site = "x"
)

// SiteDetector identifies which supported site template a page matches.
type SiteDetector interface {
	// Detect returns the site the page belongs to, or SiteUnknown if the page
	// does not match any supported template.
	Detect(page Page) Site
}
