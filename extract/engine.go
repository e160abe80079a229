// Package extract orchestrates AI-assisted location extraction from
// article text. The engine validates and bounds the input, delegates
// entity recognition to the model, and then runs a pipeline of
// deterministic roles that refine the candidates before normalization.
package extract

import (
	"context"
	"strings"

	"github.com/fwojciec/pinpoint"
)

// Input bounds for a single extraction run. Text below the minimum cannot
// carry a location mention worth extracting; text above the maximum is
// truncated to keep the prompt inside a single model call.
const (
	MinArticleLength = 10
	MaxArticleLength = 10000
)

// Result is the outcome of one extraction run.
type Result struct {
	Candidates []pinpoint.Location
	Truncated  bool
}

// Engine runs entity extraction followed by the refinement roles.
type Engine struct {
	Entities pinpoint.EntityExtractor
	Roles    []pinpoint.Role
}

// NewEngine creates an Engine with the default role pipeline.
func NewEngine(entities pinpoint.EntityExtractor) *Engine {
	return &Engine{
		Entities: entities,
		Roles: []pinpoint.Role{
			NewConfidenceRole(),
			NewContextRole(),
		},
	}
}

// Run extracts location candidates from article text. Texts shorter than
// MinArticleLength are rejected with EINVALID; longer texts are truncated
// at MaxArticleLength and flagged in the result.
func (e *Engine) Run(ctx context.Context, text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < MinArticleLength {
		return nil, pinpoint.Errorf(pinpoint.EINVALID, "article text too short to analyze (minimum %d characters)", MinArticleLength)
	}

	truncated := false
	if runes := []rune(text); len(runes) > MaxArticleLength {
		text = string(runes[:MaxArticleLength])
		truncated = true
	}

	candidates, err := e.Entities.ExtractEntities(ctx, text)
	if err != nil {
		return nil, err
	}

	for _, role := range e.Roles {
		candidates = role.Apply(text, candidates)
	}

	return &Result{Candidates: candidates, Truncated: truncated}, nil
}
