// Package pipeline orchestrates a full analysis run: content acquisition,
// AI-assisted extraction, normalization, and geocoding enrichment.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/extract"
	"golang.org/x/sync/errgroup"
)

// DefaultGeocodeConcurrency bounds concurrent geocoding calls. The public
// Nominatim limiter serializes requests anyway; the bound matters for
// cached lookups and self-hosted instances.
const DefaultGeocodeConcurrency = 4

// Ensure Analyzer implements pinpoint.AnalysisService at compile time.
var _ pinpoint.AnalysisService = (*Analyzer)(nil)

// Analyzer runs the analysis pipeline. Stages before geocoding fail the
// run; geocoding is fail-soft per candidate.
type Analyzer struct {
	Fetcher     pinpoint.Fetcher
	Cascade     *pinpoint.Cascade
	Engine      *extract.Engine
	Geocoder    pinpoint.Geocoder
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration
}

// AnalyzeURL fetches the article behind the URL, recovers its text, and
// analyzes it.
func (a *Analyzer) AnalyzeURL(ctx context.Context, url string) (*pinpoint.Analysis, error) {
	delays := a.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, url, a.Fetcher.Fetch, a.Logger, delays)
	if err != nil {
		return nil, err
	}

	text, err := a.Cascade.Extract(html)
	if err != nil {
		return nil, err
	}
	a.logger().Debug("content recovered", "url", url, "strategy", text.Strategy, "chars", len(text.Text))

	article := pinpoint.ArticleContent{
		Source:     url,
		SourceType: pinpoint.SourceURL,
		Title:      text.Title,
		Text:       text.Text,
		Hash:       ComputeHash(text.Text),
	}
	return a.analyze(ctx, article)
}

// AnalyzeText analyzes raw pasted article text, skipping acquisition.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) (*pinpoint.Analysis, error) {
	article := pinpoint.ArticleContent{
		Source:     "text",
		SourceType: pinpoint.SourceText,
		Text:       text,
		Hash:       ComputeHash(text),
	}
	return a.analyze(ctx, article)
}

// analyze runs extraction, normalization, and geocoding over prepared
// article content.
func (a *Analyzer) analyze(ctx context.Context, article pinpoint.ArticleContent) (*pinpoint.Analysis, error) {
	result, err := a.Engine.Run(ctx, article.Text)
	if err != nil {
		return nil, err
	}

	locations := pinpoint.Normalize(result.Candidates)
	a.logger().Debug("candidates normalized", "raw", len(result.Candidates), "kept", len(locations))

	failures := a.geocodeAll(ctx, locations)

	return &pinpoint.Analysis{
		Article:         article,
		Locations:       locations,
		Truncated:       result.Truncated,
		GeocodeFailures: failures,
	}, nil
}

// geocodeAll enriches the set in place, preserving its order. Individual
// failures never fail the run: unresolved candidates keep nil coordinates.
// The returned count covers service failures only, not names the geocoder
// simply doesn't know.
func (a *Analyzer) geocodeAll(ctx context.Context, locations pinpoint.LocationSet) int {
	if a.Geocoder == nil || len(locations) == 0 {
		return 0
	}

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultGeocodeConcurrency
	}

	type geocodeResult struct {
		position int
		coords   *pinpoint.Coordinates
		err      error
	}

	resultCh := make(chan geocodeResult, len(locations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i := range locations {
			i := i
			g.Go(func() error {
				coords, err := a.Geocoder.Geocode(gctx, locations[i].Name, locations[i].Type)
				resultCh <- geocodeResult{position: i, coords: coords, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var failures int
	for result := range resultCh {
		loc := &locations[result.position]
		switch {
		case result.err == nil:
			loc.Latitude = &result.coords.Latitude
			loc.Longitude = &result.coords.Longitude
			loc.Address = result.coords.Address
		case pinpoint.ErrorCode(result.err) == pinpoint.ENOTFOUND:
			a.logger().Debug("no coordinates found", "name", loc.Name, "type", loc.Type)
		default:
			failures++
			a.logger().Warn("geocoding failed", "name", loc.Name, "error", result.err)
		}
	}

	return failures
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// ComputeHash computes the xxhash of article text, used to detect
// identical resubmissions within a session.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
