// Package rod provides a browser-based implementation of pinpoint.Fetcher
// for news sites that render their articles with JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pinpoint"
	pinpointhttp "github.com/fwojciec/pinpoint/http"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout matches the plain HTTP fetcher so callers can swap
// implementations without changing behavior.
const DefaultFetchTimeout = 15 * time.Second

// Ensure Fetcher implements pinpoint.Fetcher at compile time.
var _ pinpoint.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-fetch timeout. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	// Launch browser using rod's launcher (finds or downloads Chrome)
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

	f := &Fetcher{browser: browser, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML. The same URL
// validation rules apply as for the plain HTTP fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := pinpointhttp.ValidateURL(url); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// Create a new page
	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", pinpoint.Errorf(pinpoint.EUNAVAILABLE, "opening browser page: %v", err)
	}
	defer page.Close()

	// Set context for all subsequent operations
	page = page.Context(ctx)

	// Navigate to URL
	if err := page.Navigate(url); err != nil {
		return "", classify(ctx, url, err)
	}

	// Wait for page to load
	if err := page.WaitLoad(); err != nil {
		return "", classify(ctx, url, err)
	}

	// Get rendered HTML
	html, err := page.HTML()
	if err != nil {
		return "", classify(ctx, url, err)
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}

// classify maps browser failures to the pipeline error taxonomy. A dead
// context means the fetch deadline expired.
func classify(ctx context.Context, url string, err error) error {
	if ctx.Err() != nil {
		return pinpoint.Errorf(pinpoint.ETIMEOUT, "timed out rendering %s", url)
	}
	return pinpoint.Errorf(pinpoint.EUNAVAILABLE, "could not render %s: %v", url, err)
}
