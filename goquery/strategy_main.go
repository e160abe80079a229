package goquery

import (
	"github.com/fwojciec/pinpoint"
)

// Ensure MainStrategy implements pinpoint.ContentStrategy at compile time.
var _ pinpoint.ContentStrategy = (*MainStrategy)(nil)

// MainStrategy extracts content from the <main> element or the element
// marked with role="main".
type MainStrategy struct{}

// NewMainStrategy creates a new MainStrategy.
func NewMainStrategy() *MainStrategy {
	return &MainStrategy{}
}

// Name returns the strategy's identifier.
func (s *MainStrategy) Name() string {
	return "main-container"
}

// Extract returns the content of the main container element.
func (s *MainStrategy) Extract(html string) (*pinpoint.ExtractResult, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}
	sel := doc.Find("main").First()
	if sel.Length() == 0 {
		sel = doc.Find(`[role="main"]`).First()
	}
	return result(doc, sel, s.Name())
}
