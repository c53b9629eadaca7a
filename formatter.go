package feeddistill

import (
	"strconv"
	"strings"
)

// ItemSeparator delimits distinct items in the page content section.
const ItemSeparator = "\n\n---\n\n"

// MetadataNote separates the supplemental user metadata from the page content.
const MetadataNote = "\n\nNote: The above user information is supplemental " +
	"metadata and not part of the original page content.\n\n--- Page " +
	"Content Below ---\n\n"

// usersHeader introduces the seen-users block.
const usersHeader = "Users seen on this page:"

// FormatArtifact assembles the final text artifact from the rendered users
// block and the rendered page content. Either part may be empty.
func FormatArtifact(users, column string) string {
	return users + MetadataNote + column
}

// FormatColumn joins item fragments in order, dropping empty ones.
func FormatColumn(fragments []string) string {
	kept := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, ItemSeparator)
}

// FormatUsers renders one line per user under a short header.
// Returns an empty string when there are no users.
func FormatUsers(users []User) string {
	var lines []string
	for _, u := range users {
		ref := FormatUserRef(u)
		if ref == "" {
			continue
		}
		line := "- " + ref
		if u.Protected {
			line += " [protected]"
		}
		if bio := collapseSpace(u.Bio); bio != "" {
			line += ": " + bio
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}
	return usersHeader + "\n" + strings.Join(lines, "\n")
}

// FormatUserRef renders "Name (@handle)" with a verified marker, degrading
// to whichever part is present.
func FormatUserRef(u User) string {
	handle := NormalizeHandle(u.Handle)
	name := strings.TrimSpace(u.Name)

	var ref string
	switch {
	case name != "" && handle != "":
		ref = name + " (@" + handle + ")"
	case handle != "":
		ref = "@" + handle
	case name != "":
		ref = name
	default:
		return ""
	}
	if u.Verified {
		ref += " [verified]"
	}
	return ref
}

// FormatPost renders a post fragment. Gated details are expected to have
// been left empty by the extractor for reduced levels.
func FormatPost(p *Post) string {
	if p.Empty() {
		return ""
	}

	var b strings.Builder
	if ref := FormatUserRef(p.Author); ref != "" {
		b.WriteString("Post by " + ref)
	} else {
		b.WriteString("Post")
	}
	if p.Context != "" {
		b.WriteString("\nContext: " + p.Context)
	}
	if p.Timestamp != "" {
		b.WriteString("\nPosted: " + p.Timestamp)
	}
	if p.Text != "" {
		b.WriteString("\nText:\n" + p.Text)
	}
	if len(p.Media) > 0 {
		b.WriteString("\nMedia: " + strings.Join(p.Media, "; "))
	}
	if p.Quote != nil && (p.Quote.Text != "" || !p.Quote.Author.Empty()) {
		if ref := FormatUserRef(p.Quote.Author); ref != "" {
			b.WriteString("\nQuoting " + ref + ":")
		} else {
			b.WriteString("\nQuoting a post:")
		}
		if p.Quote.Text != "" {
			b.WriteString("\n" + p.Quote.Text)
		}
	}
	if counts := FormatEngagement(p.Engagement); counts != "" {
		b.WriteString("\n" + counts)
	}
	return b.String()
}

// FormatEngagement renders the counters that are present, in a fixed order.
func FormatEngagement(e Engagement) string {
	var parts []string
	add := func(label string, v *int) {
		if v != nil {
			parts = append(parts, label+": "+strconv.Itoa(*v))
		}
	}
	add("Replies", e.Replies)
	add("Reposts", e.Reposts)
	add("Likes", e.Likes)
	add("Bookmarks", e.Bookmarks)
	add("Views", e.Views)
	return strings.Join(parts, " · ")
}

// FormatNotification renders a notification fragment.
func FormatNotification(n *Notification) string {
	if n.Empty() {
		return ""
	}

	var lines []string
	if n.Message != "" {
		lines = append(lines, "Notification: "+n.Message)
	} else {
		lines = append(lines, "Notification")
	}
	if len(n.Actors) > 0 {
		refs := make([]string, 0, len(n.Actors))
		for _, a := range n.Actors {
			if ref := FormatUserRef(a); ref != "" {
				refs = append(refs, ref)
			}
		}
		if len(refs) > 0 {
			lines = append(lines, "Users: "+strings.Join(refs, ", "))
		}
	}
	if n.Timestamp != "" {
		lines = append(lines, "Posted: "+n.Timestamp)
	}
	if n.PostText != "" {
		lines = append(lines, "Referenced post:\n"+n.PostText)
	}
	return strings.Join(lines, "\n")
}

// collapseSpace joins all whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
