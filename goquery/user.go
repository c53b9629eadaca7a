package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/feeddistill"
)

// handleRe matches a valid X screen name.
var handleRe = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// profileHrefRe matches a link to a profile root, e.g. "/alice".
var profileHrefRe = regexp.MustCompile(`^/([A-Za-z0-9_]{1,15})/?$`)

// distillSeenUsers collects every distinct user identified on the page, in
// first-seen order. A later sighting fills in fields the first one lacked
// without moving the entry. Bios are kept only when the level includes them.
func distillSeenUsers(root *goquery.Selection, level feeddistill.Level) []feeddistill.User {
	seen := make(map[string]int)
	var users []feeddistill.User

	root.Find(seenUserQuery).Each(func(_ int, sel *goquery.Selection) {
		var u feeddistill.User
		switch sel.AttrOr(attrTestID, "") {
		case "UserCell":
			u = userFromCell(sel)
		case "UserName":
			u = userFromName(sel)
			u.Bio = profileBio(root)
		default:
			u = userFromName(sel)
		}
		if !level.Detailed() {
			u.Bio = ""
		}

		key := u.Key()
		if key == "" {
			return
		}
		if idx, ok := seen[key]; ok {
			mergeUser(&users[idx], u)
			return
		}
		seen[key] = len(users)
		users = append(users, u)
	})

	return users
}

// mergeUser fills empty fields of dst from src.
func mergeUser(dst *feeddistill.User, src feeddistill.User) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Bio == "" {
		dst.Bio = src.Bio
	}
	dst.Verified = dst.Verified || src.Verified
	dst.Protected = dst.Protected || src.Protected
}

// userFromName reads a user from a name block: the display name is the
// first non-empty span, the handle is the first span starting with "@".
func userFromName(sel *goquery.Selection) feeddistill.User {
	var u feeddistill.User
	if sel.Length() == 0 {
		return u
	}

	sel.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := flatText(s)
		switch {
		case text == "" || text == "·":
		case strings.HasPrefix(text, "@"):
			if h := strings.TrimPrefix(text, "@"); u.Handle == "" && handleRe.MatchString(h) {
				u.Handle = h
			}
		case u.Name == "" && u.Handle == "":
			u.Name = text
		}
		return u.Handle == ""
	})

	if u.Handle == "" {
		u.Handle = handleFromLinks(sel)
	}
	u.Verified = sel.Find(selVerified).Length() > 0
	u.Protected = sel.Find(selProtected).Length() > 0
	return u
}

// userFromCell reads a user from a user cell (who-to-follow, lists, search).
func userFromCell(cell *goquery.Selection) feeddistill.User {
	u := userFromName(cell)

	if bio := cell.Find(selProfileBio).First(); bio.Length() > 0 {
		u.Bio = nodeText(bio)
		return u
	}

	// Without a description marker the bio is the last auto-direction block
	// that is not part of a link or button.
	candidates := cell.Find(`div[dir="auto"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		if s.ParentsUntilSelection(cell).Filter("a, button").Length() > 0 {
			return false
		}
		text := flatText(s)
		return text != "" && text != u.Name && text != "@"+u.Handle
	})
	u.Bio = nodeText(candidates.Last())
	return u
}

// profileBio returns the profile header description, ignoring descriptions
// that belong to user cells.
func profileBio(root *goquery.Selection) string {
	bio := root.Find(selProfileBio).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest(selUserCell).Length() == 0
	}).First()
	return nodeText(bio)
}

// handleFromLinks falls back to the first link that points at a profile root.
func handleFromLinks(sel *goquery.Selection) string {
	var handle string
	sel.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if m := profileHrefRe.FindStringSubmatch(a.AttrOr("href", "")); m != nil {
			handle = m[1]
			return false
		}
		return true
	})
	return handle
}
