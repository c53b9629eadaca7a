package feeddistill

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// BoundResult describes an artifact after it was fitted to a token budget.
type BoundResult struct {
	Text string

	// Tokens is the token count of Text. It is zero when no budget was applied.
	Tokens int

	// Truncated reports whether content was cut to fit the budget.
	Truncated bool

	// UsedPercentage is the share of the original text that was kept, 0-100.
	UsedPercentage int
}

// Bound fits text into maxTokens tokens as counted by counter.
// A maxTokens of zero or less disables the budget. When the text does not
// fit, the longest prefix that fits is kept, cut at an item separator or
// line break when one is close enough to the cut point.
func Bound(ctx context.Context, text string, maxTokens int, counter TokenCounter) (*BoundResult, error) {
	if maxTokens <= 0 || text == "" {
		return &BoundResult{Text: text, UsedPercentage: 100}, nil
	}

	total, err := counter.CountTokens(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("counting tokens: %w", err)
	}
	if total <= maxTokens {
		return &BoundResult{Text: text, Tokens: total, UsedPercentage: 100}, nil
	}

	runes := []rune(text)
	n := len(runes) * maxTokens / total
	for n > 0 {
		cut := cutPoint(runes, n)
		candidate := string(runes[:cut])

		tokens, err := counter.CountTokens(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("counting tokens: %w", err)
		}
		if tokens <= maxTokens {
			return &BoundResult{
				Text:           candidate,
				Tokens:         tokens,
				Truncated:      true,
				UsedPercentage: cut * 100 / len(runes),
			}, nil
		}

		next := n * 9 / 10
		if next == n {
			next--
		}
		n = next
	}

	return &BoundResult{Truncated: true}, nil
}

// cutPoint returns a rune offset no greater than n, preferring the last
// item separator and then the last line break, as long as either keeps at
// least half of the n runes.
func cutPoint(runes []rune, n int) int {
	prefix := string(runes[:n])
	for _, sep := range []string{ItemSeparator, "\n"} {
		if i := strings.LastIndex(prefix, sep); i > 0 {
			if cut := utf8.RuneCountInString(prefix[:i]); cut*2 >= n {
				return cut
			}
		}
	}
	return n
}

// LongContentNotice returns the note shown when only part of a page was
// used. Returns an empty string when nothing was cut.
func LongContentNotice(r *BoundResult) string {
	if r == nil || !r.Truncated {
		return ""
	}
	return fmt.Sprintf("This conversation uses only the first %d%% of the page content.", r.UsedPercentage)
}
