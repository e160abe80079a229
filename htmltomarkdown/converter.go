// Package htmltomarkdown converts extracted article HTML into the plain
// prose handed to the location extraction engine. Markdown keeps paragraph
// and heading boundaries, which the extraction prompt relies on for
// sentence-level context.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/pinpoint"
)

// Ensure Converter implements pinpoint.Converter at compile time.
var _ pinpoint.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to turn article HTML into clean text.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms article HTML into Markdown prose, trimming trailing
// whitespace per line and collapsing runs of blank lines.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pinpoint.Errorf(pinpoint.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", pinpoint.Errorf(pinpoint.EINTERNAL, "markdown conversion failed: %v", err)
	}

	return tidy(result), nil
}

// tidy normalizes converter output: strips trailing whitespace from every
// line and collapses consecutive blank lines into one.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
