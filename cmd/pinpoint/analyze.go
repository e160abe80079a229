package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/chat"
	"github.com/fwojciec/pinpoint/kml"
)

// runAnalysis resolves the input argument shared by analyze, ask, and
// export: a URL is fetched, "-" reads article text from stdin. Errors are
// reported to stderr before returning.
func runAnalysis(deps *Dependencies, input string) (*pinpoint.Analysis, error) {
	var analysis *pinpoint.Analysis
	var err error

	if input == "-" {
		text, rerr := io.ReadAll(deps.Stdin)
		if rerr != nil {
			return nil, pinpoint.Errorf(pinpoint.EINTERNAL, "reading article from stdin: %v", rerr)
		}
		analysis, err = deps.Analyzer.AnalyzeText(deps.Ctx, string(text))
	} else {
		analysis, err = deps.Analyzer.AnalyzeURL(deps.Ctx, input)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pinpoint.ErrorMessage(err))
		return nil, err
	}
	return analysis, nil
}

// exportTitle picks the document title for KML output.
func exportTitle(analysis *pinpoint.Analysis) string {
	if analysis.Article.Title != "" {
		return analysis.Article.Title
	}
	return analysis.Article.Source
}

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	analysis, err := runAnalysis(deps, c.Input)
	if err != nil {
		return err
	}

	switch c.Format {
	case "json":
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	case "kml":
		return kml.Write(deps.Stdout, exportTitle(analysis), analysis.Locations)
	default:
		writeTextReport(deps.Stdout, analysis)
		return nil
	}
}

// writeTextReport prints the summary line followed by one line per location.
func writeTextReport(w io.Writer, analysis *pinpoint.Analysis) {
	fmt.Fprintln(w, chat.Summarize(analysis.Locations, analysis.GeocodeFailures))
	if analysis.Truncated {
		fmt.Fprintln(w, "Note: the article was long, so only the first part was analyzed.")
	}

	for _, loc := range analysis.Locations {
		fmt.Fprintf(w, "  - %s (%s, %s confidence)", loc.Name, loc.Type, loc.ConfidenceLabel())
		if loc.Geocoded() {
			fmt.Fprintf(w, " %.4f,%.4f", *loc.Latitude, *loc.Longitude)
		}
		if loc.Ambiguous {
			fmt.Fprint(w, " [ambiguous]")
		}
		fmt.Fprintln(w)
	}
}
