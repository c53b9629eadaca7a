//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/feeddistill"
	"github.com/fwojciec/feeddistill/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Fetcher implements feeddistill.Fetcher.
var _ feeddistill.Fetcher = (*rod.Fetcher)(nil)

func serveHTML(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_WaitsForTimeline(t *testing.T) {
	t.Parallel()

	// The timeline is inserted well after the load event, as on X.
	srv := serveHTML(t, `<!DOCTYPE html>
<html>
<head><title>Home / X</title></head>
<body>
<div id="react-root"><main><div data-testid="primaryColumn"></div></main></div>
<script>
setTimeout(function () {
  var a = document.createElement('article');
  a.setAttribute('data-testid', 'tweet');
  a.textContent = 'Rendered post';
  document.querySelector('[data-testid="primaryColumn"]').appendChild(a);
}, 500);
</script>
</body>
</html>`)

	fetcher, err := rod.NewFetcher(rod.WithRenderTimeout(5 * time.Second))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Rendered post")
}

func TestFetcher_Fetch_ReturnsHTMLWhenTimelineNeverRenders(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, `<html><body><div id="react-root">Something went wrong</div></body></html>`)

	fetcher, err := rod.NewFetcher(rod.WithRenderTimeout(200 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "Something went wrong")
}

func TestFetcher_Fetch_WithoutStealth(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, `<html><body><div id="content">Loading...</div>
<script>document.getElementById('content').textContent = 'JavaScript Rendered';</script>
</body></html>`)

	fetcher, err := rod.NewFetcher(rod.WithStealth(false), rod.WithRenderTimeout(0))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "JavaScript Rendered")
	assert.NotContains(t, html, "Loading...")
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "https://x.com/home")

	require.Error(t, err)
	assert.Equal(t, feeddistill.EINVALID, feeddistill.ErrorCode(err))
	assert.Contains(t, feeddistill.ErrorMessage(err), "closed")
}
