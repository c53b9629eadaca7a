package mock

import (
	"context"

	"github.com/fwojciec/feeddistill"
)

var _ feeddistill.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of feeddistill.ArtifactStore.
type ArtifactStore struct {
	SaveFn   func(ctx context.Context, a *feeddistill.Artifact) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ArtifactStore) Save(ctx context.Context, a *feeddistill.Artifact) error {
	return s.SaveFn(ctx, a)
}

func (s *ArtifactStore) Commit() error {
	return s.CommitFn()
}

func (s *ArtifactStore) Abort() error {
	return s.AbortFn()
}
