package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/feeddistill"
	"github.com/samber/lo"
)

// avatarPrefix precedes the handle in avatar container test IDs.
const avatarPrefix = "UserAvatar-Container-"

// distillNotification extracts a notification from its article element.
// Returns nil and an empty fragment if it has neither a message nor actors.
func distillNotification(article *goquery.Selection, level feeddistill.Level) (*feeddistill.Notification, string) {
	var actors []feeddistill.User
	article.Find(selAvatar).Each(func(_ int, s *goquery.Selection) {
		handle := strings.TrimPrefix(s.AttrOr(attrTestID, ""), avatarPrefix)
		if handleRe.MatchString(handle) {
			actors = append(actors, feeddistill.User{Handle: handle})
		}
	})

	n := &feeddistill.Notification{
		Message:  notificationMessage(article),
		Actors:   lo.UniqBy(actors, feeddistill.User.Key),
		PostText: nodeText(article.Find(selTweetText).First()),
	}
	if level.Detailed() {
		n.Timestamp = article.Find(selTime).First().AttrOr("datetime", "")
	}

	if n.Empty() {
		return nil, ""
	}
	return n, feeddistill.FormatNotification(n)
}

// notificationMessage returns the visible text of a notification without
// the referenced post, avatars and timestamps. It works on a copy so the
// page is never modified.
func notificationMessage(article *goquery.Selection) string {
	c := article.Clone()
	c.Find(strings.Join([]string{selTweetText, selAvatar, "time"}, ", ")).Remove()
	return flatText(c)
}
