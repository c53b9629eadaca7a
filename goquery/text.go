package goquery

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nodeText renders the visible text of a selection. Emoji images become
// their alt text, <br> and block boundaries become line breaks. Leading and
// trailing whitespace is trimmed; inner whitespace is kept.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(&b, n)
	}
	return strings.TrimSpace(b.String())
}

func writeNodeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Img:
			b.WriteString(nodeAttr(n, "alt"))
			return
		case atom.Br:
			b.WriteString("\n")
			return
		case atom.Script, atom.Style, atom.Svg, atom.Noscript:
			return
		case atom.Div, atom.P, atom.Li, atom.Blockquote:
			b.WriteString("\n")
			defer b.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(b, c)
	}
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace joins all whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// flatText is nodeText with whitespace collapsed, for single-line values.
func flatText(sel *goquery.Selection) string {
	return collapseSpace(nodeText(sel))
}

// countRe matches the leading number of an engagement label such as
// "1,234 Likes. Like" or "1.2K views".
var countRe = regexp.MustCompile(`^\s*(\d[\d,.]*)\s*([KkMmBb])?\b`)

// parseCount reads the count at the start of an engagement label.
// Returns false if the label carries no count or one too large for an int.
func parseCount(label string) (int, bool) {
	m := countRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}

	if m[2] == "" {
		digits := strings.NewReplacer(",", "", ".", "").Replace(m[1])
		n, err := strconv.Atoi(digits)
		if err != nil {
			return 0, false
		}
		return n, true
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToUpper(m[2]) {
	case "K":
		f *= 1e3
	case "M":
		f *= 1e6
	case "B":
		f *= 1e9
	}
	f = math.Round(f)
	if f >= float64(math.MaxInt) {
		return 0, false
	}
	return int(f), true
}
