package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_Answer_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil) // nil client ok, validation fails first

	_, err := asker.Answer(context.Background(), "  ", pinpoint.LocationSet{}, nil)

	require.Error(t, err)
	assert.Equal(t, pinpoint.EINVALID, pinpoint.ErrorCode(err))
	assert.Contains(t, pinpoint.ErrorMessage(err), "question required")
}

func TestBuildAnswerConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildAnswerConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "geographic locations")
}

func TestBuildAnswerConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildAnswerConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildAnswerPrompt_ContainsLocationData(t *testing.T) {
	t.Parallel()

	lat, lng := 48.8566, 2.3522
	locations := pinpoint.LocationSet{
		{
			Name:       "Paris",
			Type:       pinpoint.TypeCity,
			Confidence: 0.9,
			Context:    "Protests erupted in Paris on Saturday.",
			Latitude:   &lat,
			Longitude:  &lng,
			Address:    "Paris, Île-de-France, France",
		},
		{Name: "Atlantis Hotel", Type: pinpoint.TypeLandmark, Confidence: 0.4},
	}

	prompt := gemini.BuildAnswerPrompt("Where did the protests happen?", locations, nil)

	assert.Contains(t, prompt, "<locations>")
	assert.Contains(t, prompt, "<name>Paris</name>")
	assert.Contains(t, prompt, "<type>city</type>")
	assert.Contains(t, prompt, "<confidence>high</confidence>")
	assert.Contains(t, prompt, "48.85")
	assert.Contains(t, prompt, "Île-de-France")
	assert.Contains(t, prompt, "</locations>")
}

func TestBuildAnswerPrompt_OmitsCoordinatesWhenUngeocodable(t *testing.T) {
	t.Parallel()

	locations := pinpoint.LocationSet{
		{Name: "Atlantis Hotel", Type: pinpoint.TypeLandmark, Confidence: 0.4},
	}

	prompt := gemini.BuildAnswerPrompt("where?", locations, nil)

	assert.NotContains(t, prompt, "<coordinates>")
}

func TestBuildAnswerPrompt_ContainsQuestion(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildAnswerPrompt("Which city is mentioned most?", pinpoint.LocationSet{}, nil)

	assert.Contains(t, prompt, "Question: Which city is mentioned most?")
}

func TestBuildAnswerPrompt_IncludesRecentHistory(t *testing.T) {
	t.Parallel()

	history := []pinpoint.ConversationTurn{
		{Role: pinpoint.TurnUser, Text: "What locations did you find?"},
		{Role: pinpoint.TurnAssistant, Text: "Paris and Geneva."},
	}

	prompt := gemini.BuildAnswerPrompt("Which has higher confidence?", pinpoint.LocationSet{}, history)

	assert.Contains(t, prompt, "<conversation>")
	assert.Contains(t, prompt, "What locations did you find?")
	assert.Contains(t, prompt, "Paris and Geneva.")
}

func TestBuildAnswerPrompt_TruncatesLongHistory(t *testing.T) {
	t.Parallel()

	var history []pinpoint.ConversationTurn
	for i := 0; i < 30; i++ {
		history = append(history,
			pinpoint.ConversationTurn{Role: pinpoint.TurnUser, Text: "old question"},
			pinpoint.ConversationTurn{Role: pinpoint.TurnAssistant, Text: "old answer"},
		)
	}
	history = append(history, pinpoint.ConversationTurn{Role: pinpoint.TurnUser, Text: "the final question"})

	prompt := gemini.BuildAnswerPrompt("follow-up", pinpoint.LocationSet{}, history)

	assert.Contains(t, prompt, "the final question")
	// 60 old turns exist but only the most recent few are replayed.
	assert.Less(t, len(prompt), 2000)
}

func TestBuildAnswerPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildAnswerPrompt("question", pinpoint.LocationSet{}, nil)

	assert.NotContains(t, prompt, "You are a helpful assistant")
}
