package main_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const timelineHTML = `<!DOCTYPE html><html><head><title>Home / X</title></head><body>
<div id="react-root"><main role="main"><div data-testid="primaryColumn">
<article data-testid="tweet">
<div data-testid="User-Name"><a href="/alice"><span>Alice</span></a><a href="/alice"><span>@alice</span></a></div>
<div data-testid="tweetText"><span>Hello from the timeline</span></div>
</article>
</div></main></div>
</body></html>`

const articleHTML = `<!DOCTYPE html><html><head><title>Blog</title></head><body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Long read</h1>
<p>Rivers carve their valleys slowly, grain by grain, over thousands of years. The water picks up sand and gravel and grinds it against the bed until the rock gives way.</p>
<p>Floods speed the process up. A single storm can move more sediment in a day than a calm river moves in a decade, which is why valleys often change shape after a wet season.</p>
<p>Engineers who build bridges study these patterns closely, because a pier set in the wrong place can be undermined within a few years of construction.</p>
</article>
<footer>Copyright 2024</footer>
</body></html>`

// writeFile writes content to a file in a fresh temp directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
