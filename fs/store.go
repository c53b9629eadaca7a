// Package fs writes distilled artifacts to the local file system.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/feeddistill"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements feeddistill.ArtifactStore at compile time.
var _ feeddistill.ArtifactStore = (*FileStore)(nil)

// MarkerFile is written into every directory Commit produces. Commit only
// replaces an existing directory that is empty or carries the marker, so
// pointing the store at a directory of unrelated files is an error rather
// than a deletion.
const MarkerFile = ".feeddistill"

// FileStore implements feeddistill.ArtifactStore with atomic update semantics.
// Artifacts are saved to a temporary directory, then moved atomically on Commit.
// A FileStore is used by one goroutine at a time.
type FileStore struct {
	baseDir string
	name    string
	staging string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to a fresh baseDir/name.tmp-* directory and moved to
// baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

// stagingDir creates the staging directory on first use.
func (s *FileStore) stagingDir() (string, error) {
	if s.staging != "" {
		return s.staging, nil
	}
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp(s.baseDir, s.name+".tmp-*")
	if err != nil {
		return "", err
	}
	s.staging = dir
	return dir, nil
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the artifact under the staging directory. Two artifacts that map
// to the same path are told apart by their content hash, then by a counter.
func (s *FileStore) Save(ctx context.Context, a *feeddistill.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := ArtifactPath(a)
	if err != nil {
		return err
	}

	staging, err := s.stagingDir()
	if err != nil {
		return err
	}
	fullPath := freePath(filepath.Join(staging, relPath), a.Hash)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatArtifact(a)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// freePath returns p, or the first of p-<hash>.txt, p-<hash>-2.txt, ...
// that does not exist yet.
func freePath(p, hash string) string {
	if !exists(p) {
		return p
	}
	stem := strings.TrimSuffix(p, ".txt")
	if hash != "" {
		stem += "-" + hash[:min(8, len(hash))]
		if candidate := stem + ".txt"; !exists(candidate) {
			return candidate
		}
	}
	for n := 2; ; n++ {
		if candidate := fmt.Sprintf("%s-%d.txt", stem, n); !exists(candidate) {
			return candidate
		}
	}
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Commit replaces the output directory with the saved artifacts. It
// returns EINVALID, leaving the directory untouched, when the directory
// holds files that were not written by a previous Commit.
func (s *FileStore) Commit() error {
	if err := s.checkReplaceable(); err != nil {
		return err
	}
	staging, err := s.stagingDir()
	if err != nil {
		return err
	}
	if err := os.Chmod(staging, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(staging, MarkerFile), nil, 0644); err != nil {
		return err
	}
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	if err := os.Rename(staging, s.finalDir()); err != nil {
		return err
	}
	s.staging = ""
	return nil
}

func (s *FileStore) checkReplaceable() error {
	dir := s.finalDir()
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if !info.IsDir() {
		return feeddistill.Errorf(feeddistill.EINVALID, "%s exists and is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 || exists(filepath.Join(dir, MarkerFile)) {
		return nil
	}
	return feeddistill.Errorf(feeddistill.EINVALID, "refusing to replace %s: it is not empty and was not written by feeddistill", dir)
}

// Abort discards the saved artifacts. The output directory is untouched.
func (s *FileStore) Abort() error {
	if s.staging == "" {
		return nil
	}
	err := os.RemoveAll(s.staging)
	s.staging = ""
	return err
}

// ArtifactPath converts an artifact to a relative file path.
// Pages with a URL are laid out by host and path:
// https://x.com/alice/status/1 → x.com/alice/status/1.txt. Pages without
// one are named after their source file: saved/home.html → home.txt.
func ArtifactPath(a *feeddistill.Artifact) (string, error) {
	var rel string
	if a.URL != "" {
		u, err := url.Parse(a.URL)
		if err != nil {
			return "", feeddistill.Errorf(feeddistill.EINVALID, "invalid URL %q", a.URL)
		}
		p := u.Path
		if p == "" || strings.HasSuffix(p, "/") {
			p += "index"
		}
		rel = strings.ToLower(u.Hostname()) + "/" + strings.TrimPrefix(p, "/")
	} else {
		base := path.Base(filepath.ToSlash(a.Source))
		rel = strings.TrimSuffix(base, path.Ext(base))
		if rel == "" || rel == "." || rel == "/" {
			rel = "page"
		}
	}

	rel = filepath.FromSlash(rel + ".txt")
	if !filepath.IsLocal(rel) {
		return "", feeddistill.Errorf(feeddistill.EINVALID, "path traversal in %q", rel)
	}
	return rel, nil
}

type frontmatter struct {
	Source string            `yaml:"source"`
	URL    string            `yaml:"url,omitempty"`
	Site   feeddistill.Site  `yaml:"site,omitempty"`
	Level  feeddistill.Level `yaml:"level"`
	Hash   string            `yaml:"hash,omitempty"`
	Notice string            `yaml:"notice,omitempty"`
}

// FormatArtifact formats an artifact with YAML frontmatter.
func FormatArtifact(a *feeddistill.Artifact) (string, error) {
	meta, err := yaml.Marshal(frontmatter{
		Source: a.Source,
		URL:    a.URL,
		Site:   a.Site,
		Level:  a.Level,
		Hash:   a.Hash,
		Notice: a.Notice,
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	b.WriteString(a.Text)
	b.WriteString("\n")
	return b.String(), nil
}
