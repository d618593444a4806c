// Package rod renders JavaScript-heavy blogs in headless Chrome.
package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced. Chrome never returns to its baseline memory, so long batches
// need a fresh process now and then.
const DefaultMaxPages = 50

// ErrClosed is returned when a closed BrowserManager is used.
var ErrClosed = errors.New("browser closed")

// BrowserManager owns the Chrome process and replaces it after MaxPages
// pages. It is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	recycles int
	closed   bool

	maxPages int
	headless bool
	bin      string
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages rendered before recycling.
func WithMaxPages(n int) ManagerOption {
	return func(m *BrowserManager) {
		if n > 0 {
			m.maxPages = n
		}
	}
}

// WithHeadful shows the browser window. Useful when a blog renders
// differently than expected.
func WithHeadful() ManagerOption {
	return func(m *BrowserManager) {
		m.headless = false
	}
}

// WithBrowserBin uses the Chrome binary at path instead of looking one up.
func WithBrowserBin(path string) ManagerOption {
	return func(m *BrowserManager) {
		m.bin = path
	}
}

// NewBrowserManager launches Chrome. Close must be called when the manager
// is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	m := &BrowserManager{maxPages: DefaultMaxPages, headless: true}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.launch(); err != nil {
		return nil, err
	}
	return m, nil
}

// Acquire returns the browser to render the next page with and counts the
// page toward the recycling threshold.
func (m *BrowserManager) Acquire() (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.pages >= m.maxPages {
		m.recycle()
	}
	m.pages++
	return m.browser, nil
}

// Recycles returns how many times the browser has been replaced.
func (m *BrowserManager) Recycles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recycles
}

// LauncherPID returns the process id of the running browser launcher, or 0.
func (m *BrowserManager) LauncherPID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.launcher == nil {
		return 0
	}
	return m.launcher.PID()
}

// Close stops the browser. It is safe to call more than once.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.shutdown(m.browser, m.launcher)
}

func (m *BrowserManager) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(m.headless)
	if m.bin != "" {
		l = l.Bin(m.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	m.browser, m.launcher = browser, l
	return nil
}

// recycle replaces the browser, keeping the old one if the launch fails.
// Must be called with mu held.
func (m *BrowserManager) recycle() {
	oldBrowser, oldLauncher := m.browser, m.launcher
	if err := m.launch(); err != nil {
		m.browser, m.launcher = oldBrowser, oldLauncher
		return
	}
	_ = m.shutdown(oldBrowser, oldLauncher)
	m.pages = 0
	m.recycles++
}

func (m *BrowserManager) shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
