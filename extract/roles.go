package extract

import (
	"strings"

	"github.com/fwojciec/pinpoint"
)

// Ensure the roles implement pinpoint.Role at compile time.
var (
	_ pinpoint.Role = (*ContextRole)(nil)
	_ pinpoint.Role = (*ConfidenceRole)(nil)
)

// ContextRole fills in the missing context of a candidate with the first
// article sentence that mentions it. Candidates that already carry context
// from the model pass through untouched.
type ContextRole struct{}

// NewContextRole creates a new ContextRole.
func NewContextRole() *ContextRole {
	return &ContextRole{}
}

// Name returns the role's identifier.
func (r *ContextRole) Name() string {
	return "context"
}

// Apply attaches a containing sentence to candidates without context.
func (r *ContextRole) Apply(articleText string, candidates []pinpoint.Location) []pinpoint.Location {
	out := make([]pinpoint.Location, len(candidates))
	copy(out, candidates)

	var sentences []string
	for i := range out {
		if out[i].Context != "" || out[i].Name == "" {
			continue
		}
		if sentences == nil {
			sentences = splitSentences(articleText)
		}
		lower := strings.ToLower(out[i].Name)
		for _, s := range sentences {
			if strings.Contains(strings.ToLower(s), lower) {
				out[i].Context = s
				break
			}
		}
	}

	return out
}

// splitSentences breaks article text into rough sentences on terminal
// punctuation. Good enough for attaching context; not a linguistic parser.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder
	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(b.String()); s != "" {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// hedgeWords in a candidate's context signal the article itself is unsure
// about the place.
var hedgeWords = []string{"reportedly", "allegedly", "rumored", "unconfirmed", "possibly"}

// ConfidenceRole adjusts model confidence using deterministic signals
// from the article: repeated mentions raise it, hedged phrasing lowers
// it. Scores are clamped to [0, 1].
type ConfidenceRole struct{}

// NewConfidenceRole creates a new ConfidenceRole.
func NewConfidenceRole() *ConfidenceRole {
	return &ConfidenceRole{}
}

// Name returns the role's identifier.
func (r *ConfidenceRole) Name() string {
	return "confidence"
}

// Apply recalibrates candidate confidence against the article text.
func (r *ConfidenceRole) Apply(articleText string, candidates []pinpoint.Location) []pinpoint.Location {
	out := make([]pinpoint.Location, len(candidates))
	copy(out, candidates)

	lowerText := strings.ToLower(articleText)
	for i := range out {
		if out[i].Name == "" {
			continue
		}

		score := out[i].Confidence
		if strings.Count(lowerText, strings.ToLower(out[i].Name)) > 1 {
			score += 0.1
		}

		lowerCtx := strings.ToLower(out[i].Context)
		for _, hedge := range hedgeWords {
			if strings.Contains(lowerCtx, hedge) {
				score -= 0.15
				break
			}
		}

		out[i].Confidence = clamp(score)
	}

	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
