// Package http provides an HTTP-based implementation of pinpoint.Fetcher
// for retrieving news article pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/pinpoint"
)

// DefaultFetchTimeout is the hard ceiling for a single article fetch.
const DefaultFetchTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response is read. Pages beyond this
// are almost certainly not news articles.
const maxBodyBytes = 10 << 20

// userAgent is sent with every request. Some news sites reject requests
// without a browser-like agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// blockedHosts are never fetched: local targets and reserved documentation
// domains that cannot serve real articles.
var blockedHosts = map[string]bool{
	"localhost":   true,
	"example.com": true,
	"example.org": true,
	"example.net": true,
	"test.com":    true,
}

// Ensure Fetcher implements pinpoint.Fetcher at compile time.
var _ pinpoint.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves article HTML from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for server-rendered pages only.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	allowLocal bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithAllowLocalHosts disables the loopback and reserved-host checks.
// Used by tests that fetch from httptest servers.
func WithAllowLocalHosts() Option {
	return func(f *Fetcher) {
		f.allowLocal = true
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// ValidateURL checks that a URL is non-empty, uses an http or https scheme,
// and does not target a local or reserved host. Returns EINVALID with a
// user-correctable message otherwise.
func ValidateURL(rawURL string) error {
	return validateURL(rawURL, false)
}

func validateURL(rawURL string, allowLocal bool) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return pinpoint.Errorf(pinpoint.EINVALID, "URL required")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return pinpoint.Errorf(pinpoint.EINVALID, "invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return pinpoint.Errorf(pinpoint.EINVALID, "unsupported URL scheme %q (use http or https)", u.Scheme)
	}
	if u.Hostname() == "" {
		return pinpoint.Errorf(pinpoint.EINVALID, "URL has no host")
	}
	if allowLocal {
		return nil
	}

	host := strings.ToLower(u.Hostname())
	if blockedHosts[host] || strings.HasSuffix(host, ".localhost") ||
		strings.HasSuffix(host, ".test") || strings.HasSuffix(host, ".example") {
		return pinpoint.Errorf(pinpoint.EINVALID, "URL host %q cannot serve a news article", host)
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsUnspecified()) {
		return pinpoint.Errorf(pinpoint.EINVALID, "URL host %q cannot serve a news article", host)
	}

	return nil
}

// Fetch retrieves the HTML for the URL, classifying failures into the
// pipeline error taxonomy: EINVALID for bad URLs, ETIMEOUT for deadline
// expiry, EUNSUPPORTED for non-HTML responses, EUNAVAILABLE for the rest.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := validateURL(rawURL, f.allowLocal); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return "", pinpoint.Errorf(pinpoint.EINVALID, "invalid URL: %v", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyTransportError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", pinpoint.Errorf(pinpoint.EUNAVAILABLE, "HTTP %d fetching %s", resp.StatusCode, rawURL)
	}

	if ct := resp.Header.Get("Content-Type"); !isHTMLContentType(ct) {
		return "", pinpoint.Errorf(pinpoint.EUNSUPPORTED, "URL does not serve HTML (content type %q)", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", classifyTransportError(rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTMLContentType accepts HTML and XHTML responses, with or without
// charset parameters. An absent header is treated as HTML, which some
// news CDNs omit.
func isHTMLContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// classifyTransportError maps transport failures to ETIMEOUT or
// EUNAVAILABLE so callers can tell retryable timeouts from connection
// problems.
func classifyTransportError(rawURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return pinpoint.Errorf(pinpoint.ETIMEOUT, "timed out fetching %s", rawURL)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return pinpoint.Errorf(pinpoint.ETIMEOUT, "timed out fetching %s", rawURL)
	}
	return pinpoint.Errorf(pinpoint.EUNAVAILABLE, "could not reach %s: %v", rawURL, err)
}
