package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/feeddistill"
)

// distillPost extracts a post from its article element.
// Returns nil and an empty fragment if the element has no author, text or media.
func distillPost(article *goquery.Selection, level feeddistill.Level) (*feeddistill.Post, string) {
	quote := findQuote(article)

	post := &feeddistill.Post{
		Author:  userFromName(outside(article, quote, selUserName).First()),
		Context: flatText(article.Find(selSocialContext).First()),
		Text:    nodeText(outside(article, quote, selTweetText).First()),
	}
	if level.Detailed() {
		post.Timestamp = outside(article, quote, selTime).First().AttrOr("datetime", "")
	}
	if level.Detailed() {
		post.Media = distillMedia(article, quote)
	}
	if level.Detailed() {
		post.Quote = distillQuote(quote)
	}
	if level.Detailed() {
		post.Engagement = distillEngagement(article, quote)
	}

	if post.Empty() {
		return nil, ""
	}
	return post, feeddistill.FormatPost(post)
}

// findQuote returns the embedded quoted post of an article, or an empty
// selection. A quote is a link block that carries its own author name.
func findQuote(article *goquery.Selection) *goquery.Selection {
	return article.Find(selQuote).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find(selUserName).Length() > 0
	}).First()
}

// outside finds query matches under article that are not inside quote.
func outside(article, quote *goquery.Selection, query string) *goquery.Selection {
	matches := article.Find(query)
	if quote.Length() == 0 {
		return matches
	}
	return matches.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !s.ParentsUntilSelection(article).IsSelection(quote)
	})
}

func distillQuote(quote *goquery.Selection) *feeddistill.Quote {
	if quote.Length() == 0 {
		return nil
	}
	q := &feeddistill.Quote{
		Author: userFromName(quote.Find(selUserName).First()),
		Text:   nodeText(quote.Find(selTweetText).First()),
	}
	if q.Text == "" && q.Author.Empty() {
		return nil
	}
	return q
}

// distillMedia describes attached media in document order.
func distillMedia(article, quote *goquery.Selection) []string {
	var media []string
	query := strings.Join([]string{selPhoto, selVideo, selCard}, ", ")
	outside(article, quote, query).Each(func(_ int, s *goquery.Selection) {
		switch s.AttrOr(attrTestID, "") {
		case "tweetPhoto":
			alt := strings.TrimSpace(s.Find("img").First().AttrOr("alt", ""))
			if alt == "" || alt == "Image" {
				media = append(media, "Image")
			} else {
				media = append(media, "Image: "+collapseSpace(alt))
			}
		case "videoPlayer":
			media = append(media, "Video")
		case "card.wrapper":
			if text := flatText(s); text != "" {
				media = append(media, "Card: "+text)
			} else {
				media = append(media, "Card")
			}
		}
	})
	return media
}

func distillEngagement(article, quote *goquery.Selection) feeddistill.Engagement {
	count := func(query string) *int {
		label, ok := outside(article, quote, query).First().Attr("aria-label")
		if !ok {
			return nil
		}
		n, ok := parseCount(label)
		if !ok {
			return nil
		}
		return &n
	}

	return feeddistill.Engagement{
		Replies:   count(selReplies),
		Reposts:   count(selReposts),
		Likes:     count(selLikes),
		Bookmarks: count(selBookmarks),
		Views:     count(selViews),
	}
}
