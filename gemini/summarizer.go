package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/feeddistill"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultInstruction is the request sent when the caller gives none.
const DefaultInstruction = "Summarize this page. Group related posts, name the " +
	"users involved, and call out anything that looks like breaking news."

// Ensure Summarizer implements feeddistill.Summarizer at compile time.
var _ feeddistill.Summarizer = (*Summarizer)(nil)

// Summarizer implements feeddistill.Summarizer using Google Gemini.
type Summarizer struct {
	client *genai.Client
	model  string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel sets the Gemini model.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client, opts ...Option) *Summarizer {
	s := &Summarizer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model returns the configured model name.
func (s *Summarizer) Model() string {
	return s.model
}

// Summarize sends the distilled page to Gemini and returns its reply.
func (s *Summarizer) Summarize(ctx context.Context, text, instruction string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", feeddistill.Errorf(feeddistill.EINVALID, "page content required")
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text, instruction)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", feeddistill.Errorf(feeddistill.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.3)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant summarizing a social media timeline page. " +
					"The page is given inside <page> tags. It may start with a list of users " +
					"seen on the page; that list is supplemental metadata, not page content. " +
					"Posts are separated by lines containing only \"---\". " +
					"Answer based only on the page. Do not invent posts or users.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt wraps the page content and appends the request.
func BuildUserPrompt(text, instruction string) string {
	if strings.TrimSpace(instruction) == "" {
		instruction = DefaultInstruction
	}

	var sb strings.Builder
	sb.WriteString("<page>\n")
	sb.WriteString(text)
	sb.WriteString("\n</page>\n\n")
	sb.WriteString(instruction)
	return sb.String()
}
