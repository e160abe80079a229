package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/kml"
)

// Run executes the export command: it analyzes the article and writes the
// location set as a flat JSON array or a KML document.
func (c *ExportCmd) Run(deps *Dependencies) error {
	analysis, err := runAnalysis(deps, c.Input)
	if err != nil {
		return err
	}

	var w io.Writer = deps.Stdout
	if c.Output != "" && c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return pinpoint.Errorf(pinpoint.EINTERNAL, "creating %s: %v", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	switch c.Format {
	case "kml":
		if err := kml.Write(w, exportTitle(analysis), analysis.Locations); err != nil {
			return err
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis.Locations); err != nil {
			return pinpoint.Errorf(pinpoint.EINTERNAL, "encoding locations: %v", err)
		}
	}

	if c.Output != "" && c.Output != "-" {
		fmt.Fprintf(deps.Stdout, "Wrote %d location(s) to %s\n", len(analysis.Locations), c.Output)
	}
	return nil
}
