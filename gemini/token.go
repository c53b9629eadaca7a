package gemini

import (
	"context"
	"sync"

	"github.com/fwojciec/feeddistill"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ feeddistill.TokenCounter = (*TokenCounter)(nil)

// Loading a tokenizer fetches its vocabulary, so one is kept per model.
var (
	tokenizersMu sync.Mutex
	tokenizers   = map[string]*tokenizer.LocalTokenizer{}
)

func loadTokenizer(model string) (*tokenizer.LocalTokenizer, error) {
	tokenizersMu.Lock()
	defer tokenizersMu.Unlock()

	if tok, ok := tokenizers[model]; ok {
		return tok, nil
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, feeddistill.Errorf(feeddistill.EINVALID, "no local tokenizer for model %q: %v", model, err)
	}
	tokenizers[model] = tok
	return tok, nil
}

// TokenCounter counts tokens the way Gemini bills the page text of a
// summary request. Bound calls it once per candidate cut, so it runs
// locally instead of calling the API.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter returns a counter for model. The local tokenizer knows
// fewer models than the API; an unknown model is EINVALID.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := loadTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// Model returns the model whose tokenizer is used.
func (tc *TokenCounter) Model() string {
	return tc.model
}

// CountTokens counts the tokens in text as a single user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
