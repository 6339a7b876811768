// Package browser provides the page-automation capability used by the
// pipeline, backed by a headless Chrome instance driven over the DevTools
// protocol. Requires Chrome/Chromium to be installed on the system.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Page is the automation surface a pipeline stage works against. Every
// operation is bounded by an explicit timeout; a miss or a timeout is
// returned as an error, never an indefinite hang.
type Page interface {
	// Navigate loads the given URL and waits for the document to be ready.
	Navigate(url string, timeout time.Duration) error
	// WaitVisible blocks until the selector matches a visible element.
	WaitVisible(selector string, timeout time.Duration) error
	// Text returns the inner text of the first element matching selector.
	Text(selector string, timeout time.Duration) (string, error)
	// HTML returns the outer HTML of the first element matching selector.
	HTML(selector string, timeout time.Duration) (string, error)
	// Count returns the number of elements matching selector.
	Count(selector string, timeout time.Duration) (int, error)
	// AttributeNth returns the given attribute of the n-th element matching
	// selector, or an error when the element or attribute is absent.
	AttributeNth(selector string, n int, attr string, timeout time.Duration) (string, error)
	// Click clicks the first element matching selector.
	Click(selector string, timeout time.Duration) error
	// SetUploadFile attaches a local file to a file-input element.
	SetUploadFile(selector, path string, timeout time.Duration) error
	// Location returns the page's current URL.
	Location(timeout time.Duration) (string, error)
}

// Options configures the browser session.
type Options struct {
	// Headless runs Chrome without a window. Disable for debugging or when
	// the site blocks headless user agents.
	Headless bool
	// UserDataDir reuses an existing Chrome profile so that logged-in
	// sessions carry over. Empty means a throwaway profile.
	UserDataDir string
}

// Session owns the Chrome process. Tabs opened from it share the profile and
// cookies; closing the session closes everything.
type Session struct {
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewSession starts a browser allocator. The session must be closed by the
// caller.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	return &Session{allocCtx: allocCtx, cancel: cancel}, nil
}

// NewTab opens a fresh tab. Each posting gets its own tab so that one
// posting's page state never leaks into the next.
func (s *Session) NewTab() (*Tab, error) {
	ctx, cancel := chromedp.NewContext(s.allocCtx)
	return &Tab{ctx: ctx, cancel: cancel}, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.cancel()
}

// Tab is a single browser tab implementing Page.
type Tab struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// Close releases the tab. Safe to call more than once.
func (t *Tab) Close() {
	t.cancel()
}

// run executes chromedp actions against the tab with a deadline.
func (t *Tab) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(t.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// queryOpt picks the matcher for a selector. XPath selectors (prefixed with
// "//") are needed for text-content matching, which CSS cannot express.
func queryOpt(selector string) chromedp.QueryOption {
	if len(selector) >= 2 && selector[:2] == "//" {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// Navigate implements Page.
func (t *Tab) Navigate(url string, timeout time.Duration) error {
	if err := t.run(timeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

// WaitVisible implements Page.
func (t *Tab) WaitVisible(selector string, timeout time.Duration) error {
	if err := t.run(timeout, chromedp.WaitVisible(selector, queryOpt(selector))); err != nil {
		return fmt.Errorf("wait visible %s: %w", selector, err)
	}
	return nil
}

// Text implements Page.
func (t *Tab) Text(selector string, timeout time.Duration) (string, error) {
	var text string
	if err := t.run(timeout,
		chromedp.WaitVisible(selector, queryOpt(selector)),
		chromedp.Text(selector, &text, queryOpt(selector)),
	); err != nil {
		return "", fmt.Errorf("read text %s: %w", selector, err)
	}
	return text, nil
}

// HTML implements Page.
func (t *Tab) HTML(selector string, timeout time.Duration) (string, error) {
	var html string
	if err := t.run(timeout,
		chromedp.WaitVisible(selector, queryOpt(selector)),
		chromedp.OuterHTML(selector, &html, queryOpt(selector)),
	); err != nil {
		return "", fmt.Errorf("read html %s: %w", selector, err)
	}
	return html, nil
}

// Count implements Page.
func (t *Tab) Count(selector string, timeout time.Duration) (int, error) {
	var count int
	script := fmt.Sprintf(`document.querySelectorAll(%q).length`, selector)
	if err := t.run(timeout, chromedp.Evaluate(script, &count)); err != nil {
		return 0, fmt.Errorf("count %s: %w", selector, err)
	}
	return count, nil
}

// AttributeNth implements Page.
func (t *Tab) AttributeNth(selector string, n int, attr string, timeout time.Duration) (string, error) {
	var value string
	script := fmt.Sprintf(
		`(() => { const el = document.querySelectorAll(%q)[%d]; if (!el) return ""; return el.getAttribute(%q) || ""; })()`,
		selector, n, attr)
	if err := t.run(timeout, chromedp.Evaluate(script, &value)); err != nil {
		return "", fmt.Errorf("attribute %s[%d].%s: %w", selector, n, attr, err)
	}
	if value == "" {
		return "", fmt.Errorf("attribute %s[%d].%s: not found", selector, n, attr)
	}
	return value, nil
}

// Click implements Page.
func (t *Tab) Click(selector string, timeout time.Duration) error {
	if err := t.run(timeout,
		chromedp.WaitVisible(selector, queryOpt(selector)),
		chromedp.Click(selector, queryOpt(selector)),
	); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	return nil
}

// SetUploadFile implements Page. The input is usually hidden, so visibility
// is not required.
func (t *Tab) SetUploadFile(selector, path string, timeout time.Duration) error {
	if err := t.run(timeout,
		chromedp.SetUploadFiles(selector, []string{path}, queryOpt(selector)),
	); err != nil {
		return fmt.Errorf("set upload file %s: %w", selector, err)
	}
	return nil
}

// Location implements Page.
func (t *Tab) Location(timeout time.Duration) (string, error) {
	var url string
	if err := t.run(timeout, chromedp.Location(&url)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}
	return url, nil
}
