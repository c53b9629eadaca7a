package main_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/batch"
	main "github.com/fwojciec/feeddistill/cmd/feeddistill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSources(t *testing.T) {
	t.Parallel()

	t.Run("reads files with the page URL", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "home.html", timelineHTML)

		sources, err := main.LoadSources([]string{path}, "https://x.com/home", nil)

		require.NoError(t, err)
		assert.Equal(t, []batch.Source{{Name: path, URL: "https://x.com/home", HTML: timelineHTML}}, sources)
	})

	t.Run("keeps URLs for the runner to fetch", func(t *testing.T) {
		t.Parallel()

		sources, err := main.LoadSources([]string{"https://x.com/home", "HTTP://twitter.com/alice"}, "", nil)

		require.NoError(t, err)
		assert.Equal(t, []batch.Source{
			{Name: "https://x.com/home", URL: "https://x.com/home"},
			{Name: "HTTP://twitter.com/alice", URL: "HTTP://twitter.com/alice"},
		}, sources)
	})

	t.Run("reads stdin when no arguments are given", func(t *testing.T) {
		t.Parallel()

		sources, err := main.LoadSources(nil, "", strings.NewReader(timelineHTML))

		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "stdin", sources[0].Name)
		assert.Equal(t, timelineHTML, sources[0].HTML)
	})

	t.Run("reads stdin only once", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadSources([]string{"-", "-"}, "", strings.NewReader(timelineHTML))

		assert.Equal(t, feeddistill.EINVALID, feeddistill.ErrorCode(err))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadSources([]string{"-"}, "", strings.NewReader("  \n"))

		assert.Equal(t, feeddistill.EINVALID, feeddistill.ErrorCode(err))
		assert.Contains(t, feeddistill.ErrorMessage(err), "stdin is empty")
	})

	t.Run("returns not found for missing files", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadSources([]string{"/nonexistent/home.html"}, "", nil)

		assert.Equal(t, feeddistill.ENOTFOUND, feeddistill.ErrorCode(err))
	})
}
