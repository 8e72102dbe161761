// Package rod provides a browser-based adlead.Fetcher for listing
// sites that render contact details with JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mkaminski/adlead"
)

// DefaultSettle is how long a page gets to finish late JavaScript
// mutations (lazy-loaded contact widgets) after the load event.
const DefaultSettle = 2 * time.Second

// Ensure Fetcher implements adlead.Fetcher at compile time.
var _ adlead.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered listing HTML using headless Chrome.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
	settle  time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSettle sets how long to wait for the DOM to stop mutating after
// the load event. Defaults to DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f := &Fetcher{browser: browser, settle: DefaultSettle}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the listing URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.settle > 0 {
		// Best effort: a page that never settles still gets scraped.
		_ = page.WaitDOMStable(f.settle, 0)
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
