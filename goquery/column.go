package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/feeddistill"
	"github.com/samber/lo"
	"golang.org/x/net/html"
)

// distillPrimaryColumn distills every item in the primary column in
// document order. A page without a primary column yields no items.
func distillPrimaryColumn(root *goquery.Selection, level feeddistill.Level) []feeddistill.Item {
	column := root.Find(selPrimaryColumn).First()
	return distillItems(column.Find(combinedQuery()), level)
}

// distillItems classifies each element by its discriminator and keeps the
// items that produced a fragment. Elements with a missing or unknown
// discriminator are skipped.
func distillItems(matches *goquery.Selection, level feeddistill.Level) []feeddistill.Item {
	return lo.FilterMap(matches.Nodes, func(_ *html.Node, i int) (feeddistill.Item, bool) {
		sel := matches.Eq(i)
		kind, ok := feeddistill.ParseItemKind(sel.AttrOr(attrTestID, ""))
		if !ok {
			return feeddistill.Item{}, false
		}
		item := distillItem(kind, sel, level)
		return item, item.Text != ""
	})
}

// distillItem dispatches an element to the distiller for its kind.
func distillItem(kind feeddistill.ItemKind, sel *goquery.Selection, level feeddistill.Level) feeddistill.Item {
	item := feeddistill.Item{Kind: kind}
	switch kind {
	case feeddistill.KindPost:
		item.Post, item.Text = distillPost(sel, level)
	case feeddistill.KindNotification:
		item.Notification, item.Text = distillNotification(sel, level)
	}
	return item
}
