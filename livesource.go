package chat2md

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-chat2md/internal/process"
)

// DefaultPageTimeout bounds page load and DOM traversal when the context has
// no deadline of its own.
const DefaultPageTimeout = 30 * time.Second

// BrowserConfig configures how a Browser reaches Chrome.
type BrowserConfig struct {
	// ControlURL attaches to an already running browser (a DevTools
	// websocket URL or host:port) instead of launching one.
	ControlURL string

	// Bin overrides the browser binary. ROD_BROWSER_BIN is used when empty.
	Bin string

	// NoSandbox disables the Chrome sandbox. Always on in CI, with
	// ROD_NO_SANDBOX=1, and when a custom binary is set.
	NoSandbox bool

	// Timeout bounds each page; zero means DefaultPageTimeout.
	Timeout time.Duration
}

// Browser is a lazily started headless Chrome shared by LiveSource calls.
// Rod downloads Chromium on first run if no binary is found.
type Browser struct {
	cfg BrowserConfig

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher // nil when attached via ControlURL
}

// NewBrowser creates a Browser. Chrome is not started until first use.
func NewBrowser(cfg BrowserConfig) *Browser {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultPageTimeout
	}
	return &Browser{cfg: cfg}
}

// ensure lazily connects to the browser.
func (b *Browser) ensure() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	var u string
	if b.cfg.ControlURL != "" {
		resolved, err := launcher.ResolveURL(b.cfg.ControlURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}
		u = resolved
	} else {
		l := launcher.New().Headless(true)

		bin := b.cfg.Bin
		if bin == "" {
			bin = os.Getenv("ROD_BROWSER_BIN")
		}
		if bin != "" {
			l = l.Bin(bin)
		}

		// NoSandbox required for CI and containerized environments
		if b.cfg.NoSandbox || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || bin != "" {
			l = l.NoSandbox(true)
		}

		launched, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}
		u = launched
		b.launcher = l
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		b.killLauncher()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.browser = rb
	return rb, nil
}

// Close releases browser resources. A browser reached through ControlURL is
// left running.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}

	var err error
	if b.launcher != nil {
		err = b.browser.Close()
	}
	b.browser = nil
	b.killLauncher()
	return err
}

// killLauncher stops a browser we launched, children included.
// Caller holds b.mu.
func (b *Browser) killLauncher() {
	if b.launcher == nil {
		return
	}
	pid := b.launcher.PID()
	b.launcher.Kill()
	if pid > 0 {
		// Usually already gone after Kill; leftovers are best effort.
		_ = process.KillProcessGroup(pid)
	}
	b.launcher = nil
}

// open creates a page for url bounded by ctx (or the configured timeout) and
// waits for it to load. The returned cancel must be called once done.
func (b *Browser) open(ctx context.Context, url string) (*rod.Page, context.CancelFunc, error) {
	rb, err := b.ensure()
	if err != nil {
		return nil, nil, err
	}

	pageCtx, cancel := ctx, context.CancelFunc(func() {})
	if _, ok := ctx.Deadline(); !ok {
		pageCtx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
	}

	page, err := rb.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		cancel()
		return nil, nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	page = page.Context(pageCtx)

	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		cancel()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrPageLoad, url, err)
	}

	return page, func() {
		_ = page.Close()
		cancel()
	}, nil
}

// LiveSource extracts a transcript from a live page, reading the DOM the
// browser actually rendered.
type LiveSource struct {
	Browser   *Browser
	URL       string
	Selectors Selectors // empty fields fall back to DefaultSelectors
}

// Transcript loads URL and walks the message nodes in document order.
func (s *LiveSource) Transcript(ctx context.Context) (*Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sel := s.Selectors.withDefaults()
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	page, done, err := s.Browser.open(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	defer done()

	messages, err := page.Elements(sel.Message)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageQuery, err)
	}

	t := &Transcript{Title: livePageTitle(page)}
	for _, msg := range messages {
		texts, err := msg.Elements(sel.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageQuery, err)
		}
		if texts.Empty() {
			continue
		}
		inner, err := texts.First().Property("innerHTML")
		if err != nil {
			return nil, fmt.Errorf("%w: message %d: %v", ErrPageQuery, len(t.Blocks), err)
		}
		avatars, err := msg.Elements(sel.Avatar)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageQuery, err)
		}
		t.Blocks = append(t.Blocks, MessageBlock{
			Ordinal:   len(t.Blocks),
			Speaker:   speakerFor(!avatars.Empty()),
			RawMarkup: inner.Str(),
		})
	}
	return t, nil
}

// livePageTitle mirrors pageTitle for a live page.
func livePageTitle(page *rod.Page) string {
	if info, err := page.Info(); err == nil {
		if title := strings.TrimSpace(info.Title); title != "" {
			return title
		}
	}
	if h1s, err := page.Elements("h1"); err == nil && !h1s.Empty() {
		if text, err := h1s.First().Text(); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				return text
			}
		}
	}
	return DefaultTitle
}
