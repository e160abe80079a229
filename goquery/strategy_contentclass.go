package goquery

import (
	"github.com/fwojciec/pinpoint"
)

// Ensure ContentClassStrategy implements pinpoint.ContentStrategy at compile time.
var _ pinpoint.ContentStrategy = (*ContentClassStrategy)(nil)

// contentClassSelectors match the class-name conventions news CMSes use for
// the article body, checked in order of specificity.
var contentClassSelectors = []string{
	`[class*="article-body"]`,
	`[class*="story-body"]`,
	`[class*="post-content"]`,
	`[class*="entry-content"]`,
	`[class*="article-content"]`,
	`[class*="story"]`,
	`[class*="content"]`,
}

// ContentClassStrategy extracts content from elements whose class names
// follow common news CMS conventions (article-body, story, content).
type ContentClassStrategy struct{}

// NewContentClassStrategy creates a new ContentClassStrategy.
func NewContentClassStrategy() *ContentClassStrategy {
	return &ContentClassStrategy{}
}

// Name returns the strategy's identifier.
func (s *ContentClassStrategy) Name() string {
	return "content-class"
}

// Extract tries each content class selector in order and returns the first
// match that carries text.
func (s *ContentClassStrategy) Extract(html string) (*pinpoint.ExtractResult, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	for _, selector := range contentClassSelectors {
		sel := largestByText(doc.Find(selector))
		if sel.Length() == 0 {
			continue
		}
		if res, err := result(doc, sel, s.Name()); err == nil {
			return res, nil
		}
	}

	return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "%s: no content class matched", s.Name())
}
