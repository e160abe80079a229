// Package trafilatura adapts go-trafilatura as an article content strategy.
// Trafilatura's precision-oriented extraction complements readability: it
// handles news pages whose body readability misjudges, at higher cost.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pinpoint"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Strategy implements pinpoint.ContentStrategy at compile time.
var _ pinpoint.ContentStrategy = (*Strategy)(nil)

// Strategy wraps go-trafilatura to recover the article body from HTML.
type Strategy struct{}

// NewStrategy creates a new Strategy.
func NewStrategy() *Strategy {
	return &Strategy{}
}

// Name returns the strategy's identifier.
func (s *Strategy) Name() string {
	return "trafilatura"
}

// Extract processes raw HTML and returns the main content.
func (s *Strategy) Extract(rawHTML string) (*pinpoint.ExtractResult, error) {
	if rawHTML == "" {
		return nil, pinpoint.Errorf(pinpoint.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "trafilatura found no content: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, pinpoint.Errorf(pinpoint.EINTERNAL, "failed to render content: %v", err)
		}
	}
	if strings.TrimSpace(contentHTML) == "" {
		return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "trafilatura found no content")
	}

	return &pinpoint.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
