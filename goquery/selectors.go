package goquery

import (
	"fmt"
	"strings"

	"github.com/fwojciec/feeddistill"
)

// attrTestID is the type discriminator attribute on X markup.
const attrTestID = "data-testid"

// Structural selectors for X timeline pages.
const (
	selAppRoot       = "#react-root"
	selPrimaryColumn = `[data-testid="primaryColumn"]`

	selUserName    = `[data-testid="User-Name"]`
	selUserCell    = `[data-testid="UserCell"]`
	selProfileName = `[data-testid="UserName"]`
	selProfileBio  = `[data-testid="UserDescription"]`
	selVerified    = `[data-testid="icon-verified"]`
	selProtected   = `[data-testid="icon-lock"]`
	selAvatar      = `[data-testid^="UserAvatar-Container-"]`

	selTweetText     = `[data-testid="tweetText"]`
	selSocialContext = `[data-testid="socialContext"]`
	selTime          = "time[datetime]"
	selQuote         = `div[role="link"]`

	selPhoto = `[data-testid="tweetPhoto"]`
	selVideo = `[data-testid="videoPlayer"]`
	selCard  = `[data-testid="card.wrapper"]`

	selReplies   = `[data-testid="reply"]`
	selReposts   = `[data-testid="retweet"], [data-testid="unretweet"]`
	selLikes     = `[data-testid="like"], [data-testid="unlike"]`
	selBookmarks = `[data-testid="bookmark"], [data-testid="removeBookmark"]`
	selViews     = `a[href$="/analytics"]`
)

// seenUserQuery matches every element that identifies a user, so one scan
// visits them in document order.
var seenUserQuery = strings.Join([]string{selUserName, selUserCell, selProfileName}, ", ")

// kindSelector associates an item kind with the query that finds its elements.
type kindSelector struct {
	Kind  feeddistill.ItemKind
	Query string
}

// selectorTable holds one entry per item kind, in feeddistill.Kinds order.
var selectorTable = buildSelectorTable()

func buildSelectorTable() []kindSelector {
	kinds := feeddistill.Kinds()
	table := make([]kindSelector, 0, len(kinds))
	for _, k := range kinds {
		table = append(table, kindSelector{
			Kind:  k,
			Query: fmt.Sprintf(`article[%s="%s"]`, attrTestID, k.TestID()),
		})
	}
	return table
}

// combinedQuery returns the union of every item kind's query.
func combinedQuery() string {
	queries := make([]string, 0, len(selectorTable))
	for _, ks := range selectorTable {
		queries = append(queries, ks.Query)
	}
	return strings.Join(queries, ", ")
}
