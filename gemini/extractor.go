// Package gemini implements the AI-backed parts of the pipeline using
// Google Gemini: entity extraction from article text and conversational
// answers about extracted locations.
package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/pinpoint"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Extractor implements pinpoint.EntityExtractor at compile time.
var _ pinpoint.EntityExtractor = (*Extractor)(nil)

// Extractor implements pinpoint.EntityExtractor using Google Gemini.
type Extractor struct {
	client *genai.Client
}

// NewExtractor creates a new Extractor.
func NewExtractor(client *genai.Client) *Extractor {
	return &Extractor{client: client}
}

// rawLocation is the shape the extraction prompt asks the model to emit.
type rawLocation struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Confidence string `json:"confidence"`
	Context    string `json:"context"`
}

// ExtractEntities asks the model for every location mentioned in the
// article text and parses the JSON reply into candidate locations.
// Malformed model output is an EAISERVICE error.
func (e *Extractor) ExtractEntities(ctx context.Context, articleText string) ([]pinpoint.Location, error) {
	if strings.TrimSpace(articleText) == "" {
		return nil, pinpoint.Errorf(pinpoint.EINVALID, "article text required")
	}

	prompt := BuildExtractionPrompt(articleText)
	config := BuildExtractionConfig()

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, pinpoint.Errorf(pinpoint.EAISERVICE, "gemini extraction call failed: %v", err)
	}
	if result == nil {
		return nil, pinpoint.Errorf(pinpoint.EAISERVICE, "gemini returned nil result")
	}

	return ParseExtractionResponse(result.Text())
}

// BuildExtractionConfig returns the GenerateContentConfig for extraction
// calls. Temperature is kept at zero so repeated runs over the same text
// produce the same candidate set.
func BuildExtractionConfig() *genai.GenerateContentConfig {
	temp := float32(0.0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a named-entity recognition system specialized in geographic locations mentioned in news articles. You reply with JSON only, no prose.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildExtractionPrompt builds the user prompt for a single article.
func BuildExtractionPrompt(articleText string) string {
	var sb strings.Builder
	sb.WriteString("Identify every real-world geographic location mentioned in the news article below.\n\n")
	sb.WriteString("Return a JSON array where each element has:\n")
	sb.WriteString(`- "name": the location name exactly as written in the article` + "\n")
	sb.WriteString(`- "type": one of "city", "country", "region", "landmark", "other"` + "\n")
	sb.WriteString(`- "confidence": "high" when the article clearly refers to the place, "medium" when likely, "low" when uncertain` + "\n")
	sb.WriteString(`- "context": the sentence or phrase where the location appears` + "\n\n")
	sb.WriteString("Do not include fictional places, organization names, or person names. ")
	sb.WriteString("Return an empty array if the article mentions no locations.\n\n")
	sb.WriteString("<article>\n")
	sb.WriteString(articleText)
	sb.WriteString("\n</article>")
	return sb.String()
}

// ParseExtractionResponse decodes the model's JSON reply into candidate
// locations. Code fences are stripped first since models add them despite
// the JSON response type.
func ParseExtractionResponse(text string) ([]pinpoint.Location, error) {
	cleaned := stripCodeFences(text)
	if cleaned == "" {
		return nil, pinpoint.Errorf(pinpoint.EAISERVICE, "gemini returned empty extraction response")
	}

	var raw []rawLocation
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, pinpoint.Errorf(pinpoint.EAISERVICE, "could not parse extraction response: %v", err)
	}

	locations := make([]pinpoint.Location, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		locations = append(locations, pinpoint.Location{
			Name:       strings.TrimSpace(r.Name),
			Type:       pinpoint.ParseLocationType(r.Type),
			Confidence: pinpoint.ConfidenceScore(r.Confidence),
			Context:    strings.TrimSpace(r.Context),
		})
	}

	return locations, nil
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
