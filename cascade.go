package pinpoint

import "strings"

// DefaultMinContentLength is the minimum cleaned-text length a strategy
// must produce to win the cascade. Shorter results are treated as
// boilerplate (cookie banners, error pages) and the next strategy is tried.
const DefaultMinContentLength = 200

// ArticleText is the outcome of a winning cascade strategy.
type ArticleText struct {
	Title string
	Text  string

	// Strategy names the strategy that produced the text.
	Strategy string
}

// Cascade tries content strategies in order and returns the first result
// whose converted text meets the minimum length. Strategy errors are not
// fatal; they advance the cascade. When every strategy fails or falls
// short, Extract returns ENOCONTENT with a hint for the user.
type Cascade struct {
	Strategies []ContentStrategy
	Converter  Converter

	// MinLength overrides DefaultMinContentLength when positive.
	MinLength int
}

// Extract recovers the main article text from raw HTML.
func (c *Cascade) Extract(html string) (*ArticleText, error) {
	if strings.TrimSpace(html) == "" {
		return nil, Errorf(EINVALID, "empty HTML input")
	}

	minLen := c.MinLength
	if minLen <= 0 {
		minLen = DefaultMinContentLength
	}

	for _, strategy := range c.Strategies {
		result, err := strategy.Extract(html)
		if err != nil || result == nil {
			continue
		}

		text, err := c.Converter.Convert(result.ContentHTML)
		if err != nil {
			continue
		}

		text = strings.TrimSpace(text)
		if len(text) < minLen {
			continue
		}

		return &ArticleText{
			Title:    strings.TrimSpace(result.Title),
			Text:     text,
			Strategy: strategy.Name(),
		}, nil
	}

	return nil, Errorf(ENOCONTENT, "could not recover article content; the page may be paywalled or not an article")
}
