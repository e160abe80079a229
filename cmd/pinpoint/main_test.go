package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/pinpoint"
	main "github.com/fwojciec/pinpoint/cmd/pinpoint"
	"github.com/fwojciec/pinpoint/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

func ptr(f float64) *float64 { return &f }

// parisAnalysis returns a two-location analysis used across command tests.
func parisAnalysis() *pinpoint.Analysis {
	return &pinpoint.Analysis{
		Article: pinpoint.ArticleContent{
			Source:     "https://news.site/article",
			SourceType: pinpoint.SourceURL,
			Title:      "Protests Continue",
			Hash:       "abc123",
		},
		Locations: pinpoint.LocationSet{
			{
				Name:       "Paris",
				Type:       pinpoint.TypeCity,
				Confidence: 0.9,
				Latitude:   ptr(48.8566),
				Longitude:  ptr(2.3522),
				Address:    "Paris, France",
			},
			{
				Name:       "France",
				Type:       pinpoint.TypeCountry,
				Confidence: 0.85,
			},
		},
	}
}

// newTestMain returns a Main with mocked services so Run never touches the
// network or the database.
func newTestMain(analyzer pinpoint.AnalysisService, asker pinpoint.Asker) *main.Main {
	m := main.NewMain()
	m.Analyzer = analyzer
	m.Asker = asker
	m.Stdin = strings.NewReader("")
	return m
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"--help flag", []string{"--help"}},
		{"-h flag", []string{"-h"}},
		{"help command", []string{"help"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestMain(nil, nil)

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			err := m.Run(testContext(), tt.args, stdout, stderr)

			require.NoError(t, err)
			assert.Contains(t, stdout.String(), "Usage: pinpoint")
			assert.Contains(t, stdout.String(), "Commands:")
			assert.Empty(t, stderr.String())
		})
	}
}

func TestRun_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(nil, nil)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(testContext(), []string{}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage: pinpoint")
}

func TestCmdAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("analyzes a URL and prints the text report", func(t *testing.T) {
		t.Parallel()

		var requestedURL string
		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				requestedURL = url
				return parisAnalysis(), nil
			},
		}

		m := newTestMain(analyzer, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"analyze", "https://news.site/article"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "https://news.site/article", requestedURL)
		assert.Contains(t, stdout.String(), "Found 2 locations")
		assert.Contains(t, stdout.String(), "Paris")
		assert.Contains(t, stdout.String(), "48.8566,2.3522")
		assert.Contains(t, stdout.String(), "France")
	})

	t.Run("reads article text from stdin with -", func(t *testing.T) {
		t.Parallel()

		var analyzedText string
		analyzer := &mock.AnalysisService{
			AnalyzeTextFn: func(ctx context.Context, text string) (*pinpoint.Analysis, error) {
				analyzedText = text
				return parisAnalysis(), nil
			},
		}

		m := newTestMain(analyzer, nil)
		m.Stdin = strings.NewReader("Thousands gathered in Paris on Saturday.")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"analyze", "-"}, stdout, stderr)

		require.NoError(t, err)
		assert.Equal(t, "Thousands gathered in Paris on Saturday.", analyzedText)
		assert.Contains(t, stdout.String(), "Found 2 locations")
	})

	t.Run("json format emits the full analysis", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}

		m := newTestMain(analyzer, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"analyze", "https://news.site/article", "--format", "json"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"name": "Paris"`)
		assert.Contains(t, stdout.String(), `"type": "city"`)
	})

	t.Run("kml format emits placemarks for geocoded locations", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}

		m := newTestMain(analyzer, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"analyze", "https://news.site/article", "-f", "kml"}, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "<Placemark>")
		assert.Contains(t, out, "<name>Protests Continue</name>")
		// France has no coordinates, so only Paris is plotted.
		assert.Equal(t, 1, strings.Count(out, "<Placemark>"))
	})

	t.Run("surfaces truncation in the text report", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				analysis := parisAnalysis()
				analysis.Truncated = true
				return analysis, nil
			},
		}

		m := newTestMain(analyzer, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"analyze", "https://news.site/article"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "only the first part was analyzed")
	})

	t.Run("returns error when analysis fails", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return nil, pinpoint.Errorf(pinpoint.ENOCONTENT, "could not recover article content")
			},
		}

		m := newTestMain(analyzer, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"analyze", "https://news.site/article"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Contains(t, stderr.String(), "could not recover article content")
		assert.Empty(t, stdout.String())
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(&mock.AnalysisService{}, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"analyze", "https://news.site/article", "--format", "xml"}, stdout, stderr)

		require.Error(t, err)
	})
}

func TestCmdAsk(t *testing.T) {
	t.Parallel()

	t.Run("analyzes and answers in one shot", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}
		asker := &mock.Asker{
			AnswerFn: func(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error) {
				assert.Equal(t, "Which city is mentioned?", question)
				require.Len(t, locations, 2)
				assert.Empty(t, history)
				return "The article mentions Paris.", nil
			},
		}

		m := newTestMain(analyzer, asker)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"ask", "https://news.site/article", "Which city is mentioned?"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "The article mentions Paris.")
		assert.Empty(t, stderr.String())
	})

	t.Run("returns error when the answer fails", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}
		asker := &mock.Asker{
			AnswerFn: func(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error) {
				return "", pinpoint.Errorf(pinpoint.EAISERVICE, "model unavailable")
			},
		}

		m := newTestMain(analyzer, asker)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"ask", "https://news.site/article", "Which city?"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "model unavailable")
	})
}

func TestCmdExport(t *testing.T) {
	t.Parallel()

	t.Run("writes a flat JSON array to stdout", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}

		m := newTestMain(analyzer, nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"export", "https://news.site/article"}, stdout, stderr)

		require.NoError(t, err)
		var locations []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &locations))
		require.Len(t, locations, 2)
		assert.Equal(t, "Paris", locations[0]["name"])
		// Unresolved coordinates serialize as null, not absent.
		assert.Contains(t, locations[1], "latitude")
		assert.Nil(t, locations[1]["latitude"])
	})

	t.Run("writes KML to a file with --output", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}

		m := newTestMain(analyzer, nil)
		out := filepath.Join(t.TempDir(), "map.kml")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"export", "https://news.site/article", "--format", "kml", "-o", out}, stdout, stderr)

		require.NoError(t, err)
		data, rerr := os.ReadFile(out)
		require.NoError(t, rerr)
		assert.Contains(t, string(data), "<Placemark>")
		assert.Contains(t, stdout.String(), "Wrote 2 location(s)")
	})
}

func TestCmdChat(t *testing.T) {
	t.Parallel()

	t.Run("analyzes a submitted URL then answers a question", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}
		asker := &mock.Asker{
			AnswerFn: func(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error) {
				assert.Equal(t, "Where did the protests happen?", question)
				require.Len(t, locations, 2)
				return "The protests took place in Paris, France.", nil
			},
		}

		m := newTestMain(analyzer, asker)
		m.Stdin = strings.NewReader("https://news.site/article\nWhere did the protests happen?\n/quit\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"chat"}, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Paste a news article")
		assert.Contains(t, out, "Found 2 locations")
		assert.Contains(t, out, "The protests took place in Paris, France.")
		assert.Empty(t, stderr.String())
	})

	t.Run("guides idle sessions without calling the AI service", func(t *testing.T) {
		t.Parallel()

		asker := &mock.Asker{
			AnswerFn: func(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error) {
				t.Fatal("Answer should not be called before an article is analyzed")
				return "", nil
			},
		}

		m := newTestMain(&mock.AnalysisService{}, asker)
		m.Stdin = strings.NewReader("What cities are mentioned?\n/quit\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"chat"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "I don't have an article to work with yet")
	})

	t.Run("reset clears the session", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return parisAnalysis(), nil
			},
		}
		asker := &mock.Asker{
			AnswerFn: func(ctx context.Context, question string, locations pinpoint.LocationSet, history []pinpoint.ConversationTurn) (string, error) {
				t.Fatal("Answer should not be called after /reset")
				return "", nil
			},
		}

		m := newTestMain(analyzer, asker)
		m.Stdin = strings.NewReader("https://news.site/article\n/reset\nWhat cities?\n/quit\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"chat"}, stdout, stderr)

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "Session cleared.")
		// The post-reset question gets the idle guidance.
		assert.Contains(t, out, "I don't have an article to work with yet")
	})

	t.Run("analysis errors are reported and the session continues", func(t *testing.T) {
		t.Parallel()

		analyzer := &mock.AnalysisService{
			AnalyzeURLFn: func(ctx context.Context, url string) (*pinpoint.Analysis, error) {
				return nil, pinpoint.Errorf(pinpoint.EUNAVAILABLE, "could not reach news.site")
			},
		}

		m := newTestMain(analyzer, &mock.Asker{})
		m.Stdin = strings.NewReader("https://news.site/article\n/quit\n")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"chat"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "could not reach news.site")
	})

	t.Run("exits cleanly at end of input", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(&mock.AnalysisService{}, &mock.Asker{})
		m.Stdin = strings.NewReader("")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"chat"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Paste a news article")
	})
}
