package batch

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the hex xxhash of content. Identical artifacts hash
// identically, which makes repeated runs easy to compare.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// ShortSource shortens a source name for log lines to at most max runes.
// The tail is kept: for a status URL or a saved file it names the page.
func ShortSource(name string, max int) string {
	r := []rune(name)
	switch {
	case max <= 0:
		return ""
	case len(r) <= max:
		return name
	case max < 4:
		return string(r[:max])
	}
	return "..." + string(r[len(r)-max+3:])
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatSize renders a byte count with a binary unit.
func FormatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	f := float64(n)
	unit := 0
	for f >= 1024 && unit < len(sizeUnits)-1 {
		f /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", f, sizeUnits[unit])
}

// FormatTokens renders a token count, rounded to thousands above 999, and
// the budget it was held to when there is one.
func FormatTokens(tokens, budget int) string {
	s := "~" + roundTokens(tokens)
	if budget > 0 {
		s += " of " + roundTokens(budget)
	}
	return s + " tokens"
}

func roundTokens(n int) string {
	if n < 1000 {
		return fmt.Sprint(n)
	}
	return fmt.Sprintf("%dk", (n+500)/1000)
}
