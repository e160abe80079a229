// Package readability adapts go-readability as an article content strategy.
// Readability scores DOM nodes the way browser reader modes do, which makes
// it the workhorse fallback when the semantic DOM strategies find nothing.
package readability

import (
	"strings"

	"github.com/fwojciec/pinpoint"
	"github.com/go-shiori/go-readability"
)

// Ensure Strategy implements pinpoint.ContentStrategy at compile time.
var _ pinpoint.ContentStrategy = (*Strategy)(nil)

// Strategy wraps go-readability to recover the article body from HTML.
type Strategy struct{}

// NewStrategy creates a new Strategy.
func NewStrategy() *Strategy {
	return &Strategy{}
}

// Name returns the strategy's identifier.
func (s *Strategy) Name() string {
	return "readability"
}

// Extract processes raw HTML and returns the main content.
func (s *Strategy) Extract(rawHTML string) (*pinpoint.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pinpoint.Errorf(pinpoint.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "readability found no content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "readability found no content")
	}

	return &pinpoint.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
