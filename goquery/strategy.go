// Package goquery implements DOM-based article content strategies using
// CSS selectors. The strategies are ordered from most precise (semantic
// article tag) to most permissive (largest text block) and are meant to be
// run as a cascade, cheapest first.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pinpoint"
)

// chromeSelector matches page furniture that never carries article text.
const chromeSelector = "script, style, nav, header, footer, aside, form, iframe, noscript"

// parse builds a goquery document from raw HTML.
func parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pinpoint.Errorf(pinpoint.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// pageTitle picks the best available title: og:title meta, then the first
// h1, then the document title.
func pageTitle(doc *goquery.Document) string {
	if t, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(t) != "" {
		return strings.TrimSpace(t)
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// contentHTML strips page furniture from the selection and returns its
// outer HTML. Returns an empty string when nothing remains.
func contentHTML(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find(chromeSelector).Remove()
	if strings.TrimSpace(clone.Text()) == "" {
		return ""
	}
	html, err := goquery.OuterHtml(clone)
	if err != nil {
		return ""
	}
	return html
}

// largestByText narrows a multi-element selection down to the single
// element carrying the most text.
func largestByText(sel *goquery.Selection) *goquery.Selection {
	if sel.Length() <= 1 {
		return sel
	}
	best := sel.First()
	bestLen := len(strings.TrimSpace(best.Text()))
	sel.Each(func(_ int, s *goquery.Selection) {
		if n := len(strings.TrimSpace(s.Text())); n > bestLen {
			best = s
			bestLen = n
		}
	})
	return best
}

// result assembles an ExtractResult, or an ENOCONTENT error when the
// selection yields no usable HTML.
func result(doc *goquery.Document, sel *goquery.Selection, strategy string) (*pinpoint.ExtractResult, error) {
	if sel.Length() == 0 {
		return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "%s: no matching element", strategy)
	}
	html := contentHTML(sel)
	if html == "" {
		return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "%s: matched element has no text", strategy)
	}
	return &pinpoint.ExtractResult{
		Title:       pageTitle(doc),
		ContentHTML: html,
	}, nil
}
