package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/feeddistill"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Converter implements feeddistill.Converter at compile time.
var _ feeddistill.Converter = (*Converter)(nil)

// Converter sanitizes HTML and converts it to Markdown. It renders pages
// that no site distiller supports.
type Converter struct {
	conv   *converter.Converter
	policy *bluemonday.Policy
}

// NewConverter creates a new Converter. Markup is sanitized with the
// user-generated-content policy, which drops scripts, styles, forms and
// event handlers but keeps text structure, links and images.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(codeLanguage).OnElements("code")
	return &Converter{conv: conv, policy: policy}
}

// codeLanguage matches the class that carries a code block's language hint.
var codeLanguage = regexp.MustCompile(`^language-[\w+-]+$`)

// Convert sanitizes the HTML content and transforms it into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", feeddistill.Errorf(feeddistill.EINVALID, "empty HTML input")
	}

	clean := c.policy.Sanitize(html)
	if strings.TrimSpace(clean) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(clean)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
