package main

import (
	"fmt"

	"github.com/fwojciec/pinpoint"
)

// Run executes the ask command: a one-shot analysis followed by a single
// question over the extracted locations.
func (c *AskCmd) Run(deps *Dependencies) error {
	analysis, err := runAnalysis(deps, c.Input)
	if err != nil {
		return err
	}

	answer, err := deps.Asker.Answer(deps.Ctx, c.Question, analysis.Locations, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pinpoint.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
