package extract_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/extract"
	"github.com/fwojciec/pinpoint/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Run_RejectsShortText(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine(&mock.EntityExtractor{
		ExtractEntitiesFn: func(context.Context, string) ([]pinpoint.Location, error) {
			t.Fatal("extractor should not be called for short text")
			return nil, nil
		},
	})

	_, err := engine.Run(context.Background(), "Paris.")

	require.Error(t, err)
	assert.Equal(t, pinpoint.EINVALID, pinpoint.ErrorCode(err))
}

func TestEngine_Run_TruncatesLongText(t *testing.T) {
	t.Parallel()

	var gotLen int
	engine := extract.NewEngine(&mock.EntityExtractor{
		ExtractEntitiesFn: func(_ context.Context, text string) ([]pinpoint.Location, error) {
			gotLen = len([]rune(text))
			return nil, nil
		},
	})

	long := strings.Repeat("News from Paris. ", 1000)
	result, err := engine.Run(context.Background(), long)

	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Equal(t, extract.MaxArticleLength, gotLen)
}

func TestEngine_Run_ShortEnoughTextIsNotTruncated(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine(&mock.EntityExtractor{
		ExtractEntitiesFn: func(context.Context, string) ([]pinpoint.Location, error) {
			return []pinpoint.Location{{Name: "Paris", Type: pinpoint.TypeCity, Confidence: 0.9}}, nil
		},
	})

	result, err := engine.Run(context.Background(), "Protests erupted in Paris on Saturday.")

	require.NoError(t, err)
	assert.False(t, result.Truncated)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, "Paris", result.Candidates[0].Name)
}

func TestEngine_Run_PropagatesExtractorError(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine(&mock.EntityExtractor{
		ExtractEntitiesFn: func(context.Context, string) ([]pinpoint.Location, error) {
			return nil, pinpoint.Errorf(pinpoint.EAISERVICE, "model unavailable")
		},
	})

	_, err := engine.Run(context.Background(), "Protests erupted in Paris on Saturday.")

	require.Error(t, err)
	assert.Equal(t, pinpoint.EAISERVICE, pinpoint.ErrorCode(err))
}

func TestEngine_Run_EmptyCandidateSetIsNotAnError(t *testing.T) {
	t.Parallel()

	engine := extract.NewEngine(&mock.EntityExtractor{
		ExtractEntitiesFn: func(context.Context, string) ([]pinpoint.Location, error) {
			return []pinpoint.Location{}, nil
		},
	})

	result, err := engine.Run(context.Background(), "The committee met to discuss quarterly results.")

	require.NoError(t, err)
	assert.Empty(t, result.Candidates)
}

func TestEngine_Run_AppliesRolesInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	engine := &extract.Engine{
		Entities: &mock.EntityExtractor{
			ExtractEntitiesFn: func(context.Context, string) ([]pinpoint.Location, error) {
				return []pinpoint.Location{{Name: "Paris", Confidence: 0.5}}, nil
			},
		},
		Roles: []pinpoint.Role{
			roleFunc("first", &order),
			roleFunc("second", &order),
		},
	}

	_, err := engine.Run(context.Background(), "Protests erupted in Paris on Saturday.")

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

type recordingRole struct {
	name  string
	order *[]string
}

func roleFunc(name string, order *[]string) pinpoint.Role {
	return &recordingRole{name: name, order: order}
}

func (r *recordingRole) Name() string { return r.name }

func (r *recordingRole) Apply(_ string, candidates []pinpoint.Location) []pinpoint.Location {
	*r.order = append(*r.order, r.name)
	return candidates
}
