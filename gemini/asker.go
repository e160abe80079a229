package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/pinpoint"
	"google.golang.org/genai"
)

// maxHistoryTurns bounds how much conversation history is replayed into
// the prompt. Older turns rarely matter for follow-up questions about the
// same article.
const maxHistoryTurns = 10

// Ensure Asker implements pinpoint.Asker at compile time.
var _ pinpoint.Asker = (*Asker)(nil)

// Asker implements pinpoint.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client) *Asker {
	return &Asker{client: client}
}

// Answer responds to a natural language question about the locations
// extracted from the current article.
func (a *Asker) Answer(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", pinpoint.Errorf(pinpoint.EINVALID, "question required")
	}

	prompt := BuildAnswerPrompt(question, locations, history)
	config := BuildAnswerConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", pinpoint.Errorf(pinpoint.EAISERVICE, "gemini answer call failed: %v", err)
	}
	if result == nil {
		return "", pinpoint.Errorf(pinpoint.EAISERVICE, "gemini returned nil result")
	}

	answer := strings.TrimSpace(result.Text())
	if answer == "" {
		return "", pinpoint.Errorf(pinpoint.EAISERVICE, "gemini returned empty answer")
	}

	return answer, nil
}

// BuildAnswerConfig returns the GenerateContentConfig for answer calls.
func BuildAnswerConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about the geographic locations extracted from a news article. Answer based only on the location data provided. If the answer is not in the data, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildAnswerPrompt builds the user prompt containing the extracted
// locations, recent conversation history, and the question.
func BuildAnswerPrompt(question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) string {
	var sb strings.Builder

	sb.WriteString("<locations>\n")
	for i, loc := range locations {
		sb.WriteString("<location>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<name>%s</name>\n", loc.Name)
		fmt.Fprintf(&sb, "<type>%s</type>\n", loc.Type)
		fmt.Fprintf(&sb, "<confidence>%s</confidence>\n", loc.ConfidenceLabel())
		if loc.Geocoded() {
			fmt.Fprintf(&sb, "<coordinates>%f, %f</coordinates>\n", *loc.Latitude, *loc.Longitude)
		}
		if loc.Address != "" {
			fmt.Fprintf(&sb, "<address>%s</address>\n", loc.Address)
		}
		if loc.Context != "" {
			fmt.Fprintf(&sb, "<context>%s</context>\n", loc.Context)
		}
		sb.WriteString("</location>\n")
	}
	sb.WriteString("</locations>\n\n")

	if len(history) > 0 {
		turns := history
		if len(turns) > maxHistoryTurns {
			turns = turns[len(turns)-maxHistoryTurns:]
		}
		sb.WriteString("<conversation>\n")
		for _, turn := range turns {
			fmt.Fprintf(&sb, "<%s>%s</%s>\n", turn.Role, turn.Text, turn.Role)
		}
		sb.WriteString("</conversation>\n\n")
	}

	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
