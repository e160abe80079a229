// Package chat implements the conversational layer: it routes user input
// to analysis or question answering, keeps per-session state transitions
// consistent, and formats the summaries shown after each analysis.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/pipeline"
)

// pastedArticleThreshold is the input length, in runes, past which a chat
// message is treated as a pasted article rather than a question.
const pastedArticleThreshold = 300

// WelcomeText greets a new session before any article is submitted.
const WelcomeText = "Paste a news article or give me an article URL, and I'll map " +
	"every location it mentions. After that you can ask me questions about the places I found."

// idleGuidance answers questions asked before any article is analyzed.
const idleGuidance = "I don't have an article to work with yet. Paste the article text " +
	"or give me its URL first, and then ask me about the locations in it."

// Service routes chat input for a session.
type Service struct {
	Analyzer pinpoint.AnalysisService
	Asker    pinpoint.Asker
	Logger   *slog.Logger
}

// Submit analyzes an article (URL or raw text) and installs the resulting
// location set into the session. Resubmitting text identical to the
// session's current article reuses the existing set without calling the
// AI service again. Only one analysis may run per session at a time.
func (s *Service) Submit(ctx context.Context, sess *pinpoint.Session, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", pinpoint.Errorf(pinpoint.EINVALID, "article text or URL required")
	}

	isURL := looksLikeURL(input)

	// Identical pasted text reuses the current results.
	if !isURL && sess.State() == pinpoint.StateReady && pipeline.ComputeHash(input) == sess.LastHash() {
		s.logger().Debug("identical article resubmitted", "session", sess.ID)
		summary := Summarize(sess.Locations(), 0)
		sess.AppendExchange(input, summary)
		return summary, nil
	}

	gen, ok := sess.BeginAnalysis()
	if !ok {
		return "", pinpoint.Errorf(pinpoint.EUNAVAILABLE, "an analysis is already running for this session")
	}
	defer sess.EndAnalysis()

	var analysis *pinpoint.Analysis
	var err error
	if isURL {
		analysis, err = s.Analyzer.AnalyzeURL(ctx, input)
	} else {
		analysis, err = s.Analyzer.AnalyzeText(ctx, input)
	}
	if err != nil {
		return "", err
	}

	if !sess.CompleteAnalysis(gen, analysis.Locations, analysis.Article.Hash) {
		// A newer submission finished first; its results stand.
		s.logger().Debug("superseded analysis discarded", "session", sess.ID)
		return "", pinpoint.Errorf(pinpoint.EUNAVAILABLE, "analysis superseded by a newer submission")
	}

	summary := Summarize(analysis.Locations, analysis.GeocodeFailures)
	if analysis.Truncated {
		summary += " The article was long, so I analyzed the first part only."
	}
	sess.AppendExchange(input, summary)

	s.logger().Info("article analyzed",
		"session", sess.ID,
		"source", analysis.Article.SourceType,
		"locations", len(analysis.Locations),
		"geocoded", analysis.Locations.GeocodedCount(),
	)

	return summary, nil
}

// Ask handles a free-form chat message. Messages that carry a URL or
// pasted article are routed to Submit; otherwise the question is answered
// against the session's current location set. The exchange is recorded
// only when the answer succeeds, so a failed call leaves history intact.
func (s *Service) Ask(ctx context.Context, sess *pinpoint.Session, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", pinpoint.Errorf(pinpoint.EINVALID, "message required")
	}

	if looksLikeURL(message) || looksLikePastedArticle(message) {
		return s.Submit(ctx, sess, message)
	}

	if sess.State() == pinpoint.StateIdle {
		sess.AppendExchange(message, idleGuidance)
		return idleGuidance, nil
	}

	answer, err := s.Asker.Answer(ctx, message, sess.Locations(), sess.History())
	if err != nil {
		return "", err
	}

	sess.AppendExchange(message, answer)
	return answer, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Summarize formats the post-analysis summary line.
func Summarize(locations pinpoint.LocationSet, failures int) string {
	if len(locations) == 0 {
		return "I didn't find any locations in this article."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d %s in the article (%d with coordinates).",
		len(locations), pluralize("location", len(locations)), locations.GeocodedCount())

	names := make([]string, 0, min(len(locations), 5))
	for i, loc := range locations {
		if i == 5 {
			break
		}
		names = append(names, loc.Name)
	}
	fmt.Fprintf(&sb, " Top mentions: %s.", strings.Join(names, ", "))

	if failures > 0 {
		fmt.Fprintf(&sb, " %d %s could not be geocoded right now.",
			failures, pluralize("location", failures))
	}

	return sb.String()
}

// looksLikeURL reports whether the input is a bare article URL.
func looksLikeURL(input string) bool {
	if strings.ContainsAny(input, " \t\n") {
		return false
	}
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// looksLikePastedArticle reports whether a chat message is long enough to
// be article text rather than a question.
func looksLikePastedArticle(message string) bool {
	return len([]rune(message)) >= pastedArticleThreshold
}

func pluralize(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
