package feeddistill

import "context"

// Summarizer is the downstream consumer of a distilled artifact.
type Summarizer interface {
	// Summarize condenses the artifact. The instruction, if not empty,
	// replaces the default request (e.g., "List the main topics").
	// Returns EINVALID if text is empty.
	Summarize(ctx context.Context, text string, instruction string) (string, error)
}
