package pinpoint

import "context"

// Asker generates natural-language answers about an extracted location set.
type Asker interface {
	// Answer combines the location set, the question, and recent
	// conversation history into a textual answer. It never re-runs
	// extraction; that decision belongs to the caller.
	Answer(ctx context.Context, question string, locations LocationSet, history []ConversationTurn) (string, error)
}

// Analysis is the outcome of one full pipeline run.
type Analysis struct {
	Article   ArticleContent
	Locations LocationSet

	// Truncated is set when the input text exceeded the engine limit and
	// was cut before extraction. Non-fatal.
	Truncated bool

	// GeocodeFailures counts candidates the geocoder could not resolve.
	// Failed candidates stay in Locations without coordinates.
	GeocodeFailures int
}

// AnalysisService runs the acquisition, extraction, normalization, and
// geocoding stages over a URL or raw text.
type AnalysisService interface {
	AnalyzeURL(ctx context.Context, url string) (*Analysis, error)
	AnalyzeText(ctx context.Context, text string) (*Analysis, error)
}
