package goquery_test

import (
	"fmt"
	"strings"
)

// xPage wraps primary column and sidebar markup in the X app shell.
func xPage(column, sidebar string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head><title>Home / X</title></head>
<body>
<div id="react-root">
<main role="main">
<div data-testid="primaryColumn">` + column + `</div>
<div data-testid="sidebarColumn">` + sidebar + `</div>
</main>
</div>
</body>
</html>`
}

// userName renders a User-Name block as it appears in a timeline post.
func userName(name, handle string, verified bool) string {
	badge := ""
	if verified {
		badge = `<svg data-testid="icon-verified" aria-label="Verified account"><g><path d="M0"></path></g></svg>`
	}
	return fmt.Sprintf(`<div data-testid="User-Name">
<div><a href="/%[2]s" role="link"><div><span><span>%[1]s</span></span>%[3]s</div></a></div>
<div><a href="/%[2]s" tabindex="-1"><span>@%[2]s</span></a><span>·</span><a href="/%[2]s/status/1"><time datetime="2024-05-01T12:00:00.000Z">May 1</time></a></div>
</div>`, name, handle, badge)
}

// tweet renders a timeline post with engagement buttons.
func tweet(name, handle, text string) string {
	return tweetWith(name, handle, text, "")
}

// tweetWith renders a timeline post with extra markup placed after the text.
func tweetWith(name, handle, text, extra string) string {
	return fmt.Sprintf(`<article data-testid="tweet" role="article" tabindex="0">
<div>%[1]s</div>
<div data-testid="tweetText" lang="en" dir="auto"><span>%[3]s</span></div>
%[4]s
<div role="group" aria-label="12 replies, 3 reposts, 40 likes, 1234 views">
<button data-testid="reply" aria-label="12 Replies. Reply" role="button"><span>12</span></button>
<button data-testid="retweet" aria-label="3 reposts. Repost" role="button"><span>3</span></button>
<button data-testid="like" aria-label="40 Likes. Like" role="button"><span>40</span></button>
<a href="/%[2]s/status/1/analytics" aria-label="1,234 views. View post analytics"><span>1,234</span></a>
</div>
</article>`, userName(name, handle, false), handle, text, extra)
}

// quote renders an embedded quoted post.
func quote(name, handle, text string) string {
	return fmt.Sprintf(`<div role="link" tabindex="0">
<div data-testid="User-Name"><div><div><span><span>%[1]s</span></span></div></div><div><span>@%[2]s</span><span>·</span><time datetime="2023-01-01T00:00:00.000Z">Jan 1</time></div></div>
<div data-testid="tweetText" lang="en"><span>%[3]s</span></div>
</div>`, name, handle, text)
}

// notification renders an entry from the notifications timeline.
func notification(message string, handles []string, postText string) string {
	var avatars strings.Builder
	for _, h := range handles {
		fmt.Fprintf(&avatars, `<a href="/%[1]s"><div data-testid="UserAvatar-Container-%[1]s"><img alt="" src="https://pbs.twimg.com/%[1]s.jpg"></div></a>`, h)
	}
	post := ""
	if postText != "" {
		post = `<div><div data-testid="tweetText" lang="en"><span>` + postText + `</span></div></div>`
	}
	return fmt.Sprintf(`<article data-testid="notification" role="article">
<div><svg><path d="M0"></path></svg></div>
<div>
<div>%s</div>
<div dir="ltr"><span>%s</span></div>
<time datetime="2024-05-02T08:00:00.000Z">May 2</time>
%s
</div>
</article>`, avatars.String(), message, post)
}

// userCell renders a who-to-follow entry.
func userCell(name, handle, bio string) string {
	return fmt.Sprintf(`<div data-testid="UserCell" role="button">
<a href="/%[2]s"><div data-testid="UserAvatar-Container-%[2]s"><img alt=""></div></a>
<div>
<a href="/%[2]s"><div dir="ltr"><span><span>%[1]s</span></span></div></a>
<a href="/%[2]s" tabindex="-1"><div dir="ltr"><span>@%[2]s</span></div></a>
<button data-testid="1234-follow"><span><span>Follow</span></span></button>
</div>
<div dir="auto"><span>%[3]s</span></div>
</div>`, name, handle, bio)
}
