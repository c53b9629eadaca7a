package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic File Storage
// The store stages artifacts in a directory of its own and swaps it in on
// Commit, never replacing a directory it did not write.

func stagingDirs(t *testing.T, base string) []string {
	t.Helper()
	dirs, err := filepath.Glob(filepath.Join(base, "output.tmp-*"))
	require.NoError(t, err)
	return dirs
}

func TestFileStore_SaveWritesToStagingDirectory(t *testing.T) {
	t.Parallel()

	// Given a store targeting a directory
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")

	// When I save an artifact
	err := store.Save(context.Background(), &feeddistill.Artifact{
		Source: "https://x.com/home",
		URL:    "https://x.com/home",
		Text:   "Post by Alice (@alice)",
	})

	// Then the file exists in the staging directory only
	require.NoError(t, err)
	staging := stagingDirs(t, base)
	require.Len(t, staging, 1)
	_, err = os.Stat(filepath.Join(staging[0], "x.com", "home.txt"))
	require.NoError(t, err, "file should exist in staging directory")
	_, err = os.Stat(filepath.Join(base, "output", "x.com", "home.txt"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist until commit")
}

func TestFileStore_CommitMovesStagedFilesToFinal(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "saved/home.html", Text: "A"}))

	require.NoError(t, store.Commit())

	_, err := os.Stat(filepath.Join(base, "output", "home.txt"))
	require.NoError(t, err, "file should exist in final directory after commit")
	_, err = os.Stat(filepath.Join(base, "output", fs.MarkerFile))
	require.NoError(t, err, "committed directory should carry the marker")
	assert.Empty(t, stagingDirs(t, base), "staging directory should be gone after commit")

	info, err := os.Stat(filepath.Join(base, "output"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestFileStore_CommitReplacesPreviousOutput(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	first := fs.NewFileStore(base, "output")
	require.NoError(t, first.Save(context.Background(), &feeddistill.Artifact{Source: "stale.html", Text: "old"}))
	require.NoError(t, first.Commit())

	second := fs.NewFileStore(base, "output")
	require.NoError(t, second.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "new"}))
	require.NoError(t, second.Commit())

	_, err := os.Stat(filepath.Join(base, "output", "home.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output", "stale.txt"))
	assert.True(t, os.IsNotExist(err), "previous output should be replaced")
}

func TestFileStore_CommitIntoEmptyDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, "output"), 0755))

	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "A"}))

	require.NoError(t, store.Commit())

	_, err := os.Stat(filepath.Join(base, "output", "home.txt"))
	assert.NoError(t, err)
}

func TestFileStore_CommitKeepsUnrelatedDirectory(t *testing.T) {
	t.Parallel()

	// Given a directory of files feeddistill did not write
	base := t.TempDir()
	notes := filepath.Join(base, "output", "notes.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(notes), 0755))
	require.NoError(t, os.WriteFile(notes, []byte("keep me"), 0644))

	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "A"}))

	// When I commit into it
	err := store.Commit()

	// Then the commit is refused and the files survive
	require.Error(t, err)
	assert.Equal(t, feeddistill.EINVALID, feeddistill.ErrorCode(err))
	content, err := os.ReadFile(notes)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(content))
	_, err = os.Stat(filepath.Join(base, "output", "home.txt"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Abort())
	assert.Empty(t, stagingDirs(t, base))
}

func TestFileStore_CommitRefusesToReplaceFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "output"), []byte("data"), 0644))

	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "A"}))

	err := store.Commit()

	require.Error(t, err)
	assert.Equal(t, feeddistill.EINVALID, feeddistill.ErrorCode(err))
	content, err := os.ReadFile(filepath.Join(base, "output"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestFileStore_AbortCleansUpStagingDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "A"}))

	require.NoError(t, store.Abort())

	assert.Empty(t, stagingDirs(t, base), "staging directory should be removed after abort")
	_, err := os.Stat(filepath.Join(base, "output"))
	assert.True(t, os.IsNotExist(err), "final directory should not exist after abort")
}

func TestFileStore_AbortLeavesSiblingTmpDirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	mine := filepath.Join(base, "output.tmp", "draft.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(mine), 0755))
	require.NoError(t, os.WriteFile(mine, []byte("draft"), 0644))

	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "A"}))
	require.NoError(t, store.Abort())

	_, err := os.Stat(mine)
	assert.NoError(t, err)
}

func TestFileStore_IncludesFrontmatter(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{
		Source: "https://x.com/notifications",
		URL:    "https://x.com/notifications",
		Site:   feeddistill.SiteX,
		Level:  feeddistill.LevelReduced,
		Hash:   "0123456789abcdef",
		Text:   "Notification: Bob liked your post",
	}))
	require.NoError(t, store.Commit())

	content, err := os.ReadFile(filepath.Join(base, "output", "x.com", "notifications.txt"))
	require.NoError(t, err)

	want := "---\n" +
		"source: https://x.com/notifications\n" +
		"url: https://x.com/notifications\n" +
		"site: x\n" +
		"level: reduced\n" +
		"hash: 0123456789abcdef\n" +
		"---\n\n" +
		"Notification: Bob liked your post\n"
	assert.Equal(t, want, string(content))
}

func TestFileStore_SeparatesArtifactsWithTheSamePath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "a/home.html", Hash: "aaaaaaaaaaaaaaaa", Text: "A"}))
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "b/home.html", Hash: "bbbbbbbbbbbbbbbb", Text: "B"}))
	require.NoError(t, store.Commit())

	_, err := os.Stat(filepath.Join(base, "output", "home.txt"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "output", "home-bbbbbbbb.txt"))
	require.NoError(t, err)
}

func TestFileStore_KeepsRepeatedArtifacts(t *testing.T) {
	t.Parallel()

	// The same page given three times has the same path and hash.
	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	for _, text := range []string{"first", "second", "third", "fourth"} {
		require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{
			URL:  "https://x.com/home",
			Hash: "0123456789abcdef",
			Text: text,
		}))
	}
	require.NoError(t, store.Commit())

	dir := filepath.Join(base, "output", "x.com")
	for file, text := range map[string]string{
		"home.txt":            "first",
		"home-01234567.txt":   "second",
		"home-01234567-2.txt": "third",
		"home-01234567-3.txt": "fourth",
	} {
		content, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err, file)
		assert.Contains(t, string(content), text, file)
	}
}

func TestFileStore_CountsRepeatedArtifactsWithoutHash(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "A"}))
	require.NoError(t, store.Save(context.Background(), &feeddistill.Artifact{Source: "home.html", Text: "B"}))
	require.NoError(t, store.Commit())

	content, err := os.ReadFile(filepath.Join(base, "output", "home-2.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "B")
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	t.Parallel()

	store := fs.NewFileStore(t.TempDir(), "output")

	err := store.Save(context.Background(), &feeddistill.Artifact{
		URL:  "https://x.com/../../../etc/passwd",
		Text: "bad content",
	})

	require.Error(t, err, "path traversal should be rejected")
	assert.Contains(t, feeddistill.ErrorMessage(err), "path traversal")
}

func TestArtifactPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		artifact feeddistill.Artifact
		want     string
	}{
		{"home timeline", feeddistill.Artifact{URL: "https://x.com/home"}, "x.com/home.txt"},
		{"status page", feeddistill.Artifact{URL: "https://X.com/alice/status/1"}, "x.com/alice/status/1.txt"},
		{"root", feeddistill.Artifact{URL: "https://x.com/"}, "x.com/index.txt"},
		{"query is ignored", feeddistill.Artifact{URL: "https://x.com/search?q=go"}, "x.com/search.txt"},
		{"saved file", feeddistill.Artifact{Source: "saved/home.html"}, "home.txt"},
		{"stdin", feeddistill.Artifact{Source: "stdin"}, "stdin.txt"},
		{"no name", feeddistill.Artifact{}, "page.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.ArtifactPath(&tt.artifact)

			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
