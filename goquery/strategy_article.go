package goquery

import (
	"github.com/fwojciec/pinpoint"
)

// Ensure ArticleStrategy implements pinpoint.ContentStrategy at compile time.
var _ pinpoint.ContentStrategy = (*ArticleStrategy)(nil)

// ArticleStrategy extracts content from the semantic <article> element.
// When a page has several article elements (link cards, related stories),
// the one with the most text wins.
type ArticleStrategy struct{}

// NewArticleStrategy creates a new ArticleStrategy.
func NewArticleStrategy() *ArticleStrategy {
	return &ArticleStrategy{}
}

// Name returns the strategy's identifier.
func (s *ArticleStrategy) Name() string {
	return "article-tag"
}

// Extract returns the content of the largest <article> element.
func (s *ArticleStrategy) Extract(html string) (*pinpoint.ExtractResult, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	return result(doc, largestByText(doc.Find("article")), s.Name())
}
