package pinpoint

import "context"

// SourceType identifies how an article entered the pipeline.
type SourceType string

// SourceType values.
const (
	SourceURL  SourceType = "url"
	SourceText SourceType = "text"
)

// ArticleContent is the cleaned article text produced by content acquisition.
// It is ephemeral: created per analysis run and consumed immediately by the
// extraction engine.
type ArticleContent struct {
	// Source is the URL the article was fetched from, or "text" for pasted input.
	Source     string
	SourceType SourceType

	// Title is the article title when a strategy recovered one.
	Title string

	// Text is the cleaned article body.
	Text string

	// Hash is the xxHash of Text, used to detect identical resubmissions
	// within a session.
	Hash string
}

// Fetcher retrieves raw HTML from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered pages.
type Fetcher interface {
	// Fetch retrieves the HTML for the URL.
	// The context controls timeout and cancellation.
	// Returns EINVALID for malformed or disallowed URLs, ETIMEOUT when the
	// deadline is exceeded, EUNAVAILABLE for connection or HTTP errors, and
	// EUNSUPPORTED when the response is not HTML.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ExtractResult holds the article content recovered by a single strategy.
type ExtractResult struct {
	// Title is the page title, when the strategy can recover one.
	Title string

	// ContentHTML is the candidate main content as HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ContentStrategy recovers the main article body from raw HTML.
// Strategies are tried in sequence by a Cascade; each one targets a
// different page shape (semantic article tags, content-class containers,
// generic main containers, largest text block).
type ContentStrategy interface {
	// Name identifies the strategy in logs and error hints.
	Name() string

	// Extract returns the candidate main content, or an error when the
	// strategy does not apply to this page.
	Extract(html string) (*ExtractResult, error)
}

// Converter converts content HTML to plain text suitable for the
// extraction engine.
type Converter interface {
	Convert(html string) (string, error)
}
