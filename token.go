package feeddistill

import (
	"context"
	"unicode/utf8"
)

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Ensure EstimateCounter implements TokenCounter at compile time.
var _ TokenCounter = EstimateCounter{}

// EstimateCounter approximates token counts at four runes per token.
// It needs no model and no network, so it is the default when no
// model-specific counter is configured.
type EstimateCounter struct{}

// CountTokens returns the rune count divided by four, rounded up.
func (EstimateCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return (utf8.RuneCountInString(text) + 3) / 4, nil
}
