package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pinpoint"
)

// Ensure LargestBlockStrategy implements pinpoint.ContentStrategy at compile time.
var _ pinpoint.ContentStrategy = (*LargestBlockStrategy)(nil)

// LargestBlockStrategy is the last-resort heuristic: it picks the <div>
// or <section> with the most directly attributable text. It scores each
// block by the text of its paragraph children only, so a wrapper div that
// merely contains everything does not beat the actual article body.
type LargestBlockStrategy struct{}

// NewLargestBlockStrategy creates a new LargestBlockStrategy.
func NewLargestBlockStrategy() *LargestBlockStrategy {
	return &LargestBlockStrategy{}
}

// Name returns the strategy's identifier.
func (s *LargestBlockStrategy) Name() string {
	return "largest-block"
}

// Extract returns the content of the block with the most paragraph text.
func (s *LargestBlockStrategy) Extract(html string) (*pinpoint.ExtractResult, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	var best *goquery.Selection
	bestScore := 0
	doc.Find("div, section").Each(func(_ int, sel *goquery.Selection) {
		score := 0
		sel.ChildrenFiltered("p").Each(func(_ int, p *goquery.Selection) {
			score += len(strings.TrimSpace(p.Text()))
		})
		if score > bestScore {
			best = sel
			bestScore = score
		}
	})

	if best == nil {
		return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "%s: no text block found", s.Name())
	}
	return result(doc, best, s.Name())
}
