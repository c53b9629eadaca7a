package feeddistill

import "context"

// Artifact is a distilled page ready to be written out.
type Artifact struct {
	// Source names where the page came from: a file path, "stdin" or a URL.
	Source string
	URL    string
	Site   Site
	Level  Level
	Hash   string

	// Notice is the long-content notice, if the text was cut.
	Notice string
	Text   string
}

// ArtifactStore writes a set of artifacts with all-or-nothing semantics.
type ArtifactStore interface {
	// Save stages an artifact. Nothing is visible until Commit.
	Save(ctx context.Context, a *Artifact) error

	// Commit publishes every staged artifact at once, replacing any
	// previous output.
	Commit() error

	// Abort discards staged artifacts.
	Abort() error
}
