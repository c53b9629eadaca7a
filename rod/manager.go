package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser serves before it is
// replaced. Timeline pages run a lot of script, so Chrome's resident memory
// grows quickly and never drops back to its baseline.
const DefaultMaxPages = 50

// TimelineWindowSize is tall enough for the first screens of a timeline to
// render without scrolling.
const TimelineWindowSize = "1280,2400"

// BrowserManager owns the Chrome process behind a Fetcher and replaces it
// after a fixed number of pages.
//
// With a user data directory the manager drives a signed-in Chrome profile,
// which is what most timelines require. Chrome locks a profile to one
// process, so the old browser is shut down before its replacement starts.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	served atomic.Int64
	closed atomic.Bool

	maxPages    int64
	headless    bool
	userDataDir string
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a browser serves before it is replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithHeadless toggles headless mode. A visible window helps when a
// timeline does not render or X asks to sign in. Defaults to true.
func WithHeadless(headless bool) ManagerOption {
	return func(bm *BrowserManager) {
		bm.headless = headless
	}
}

// WithUserDataDir runs Chrome on an existing profile directory, reusing its
// cookies. An empty dir uses a throwaway profile.
func WithUserDataDir(dir string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.userDataDir = dir
	}
}

func newManager(opts []ManagerOption) *BrowserManager {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		headless: true,
	}
	for _, opt := range opts {
		opt(bm)
	}
	return bm
}

// NewLauncher returns the Chrome launcher a BrowserManager with the same
// options would use, without starting Chrome.
func NewLauncher(opts ...ManagerOption) *launcher.Launcher {
	return newManager(opts).newLauncher()
}

// NewBrowserManager starts Chrome. Close must be called when the manager is
// no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := newManager(opts)
	browser, lnchr, err := bm.start()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, lnchr
	return bm, nil
}

func (bm *BrowserManager) newLauncher() *launcher.Launcher {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", TimelineWindowSize).
		Leakless(true).
		Headless(bm.headless)
	if bm.userDataDir != "" {
		l = l.UserDataDir(bm.userDataDir)
	}
	return l
}

func (bm *BrowserManager) start() (*rod.Browser, *launcher.Launcher, error) {
	lnchr := bm.newLauncher()
	u, err := lnchr.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, lnchr, nil
}

// stop shuts down a browser. Throwaway profiles are removed with it.
func (bm *BrowserManager) stop(browser *rod.Browser, lnchr *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if lnchr != nil {
		lnchr.Kill()
		if bm.userDataDir == "" {
			lnchr.Cleanup()
		}
	}
	return err
}

// Browser returns the current browser, replacing it first when it has
// served maxPages pages. It returns nil after Close. Callers report each
// page with IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed.Load() {
		return nil
	}
	if bm.served.Load() >= bm.maxPages {
		bm.replace()
	}
	return bm.browser
}

// replace swaps in a fresh browser. A shared profile cannot be open twice,
// so it is released before the new browser starts; otherwise the old
// browser stays in service if the new one fails to start.
// Must be called with mu held.
func (bm *BrowserManager) replace() {
	if bm.userDataDir != "" {
		_ = bm.stop(bm.browser, bm.launcher)
		bm.browser, bm.launcher = nil, nil
	}

	browser, lnchr, err := bm.start()
	if err != nil {
		return
	}

	_ = bm.stop(bm.browser, bm.launcher)
	bm.browser, bm.launcher = browser, lnchr
	bm.served.Store(0)
}

// IncrementPageCount records a page served by the current browser.
func (bm *BrowserManager) IncrementPageCount() {
	bm.served.Add(1)
}

// Closed reports whether Close has been called.
func (bm *BrowserManager) Closed() bool {
	return bm.closed.Load()
}

// Close shuts Chrome down. It is safe to call more than once.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := bm.stop(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// LauncherPID returns the process ID of the running Chrome, or 0.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}
