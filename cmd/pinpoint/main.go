package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/chat"
	"github.com/fwojciec/pinpoint/extract"
	"github.com/fwojciec/pinpoint/gemini"
	"github.com/fwojciec/pinpoint/goquery"
	"github.com/fwojciec/pinpoint/htmltomarkdown"
	pinhttp "github.com/fwojciec/pinpoint/http"
	"github.com/fwojciec/pinpoint/nominatim"
	"github.com/fwojciec/pinpoint/pipeline"
	"github.com/fwojciec/pinpoint/readability"
	"github.com/fwojciec/pinpoint/rod"
	pinslog "github.com/fwojciec/pinpoint/slog"
	"github.com/fwojciec/pinpoint/sqlite"
	"github.com/fwojciec/pinpoint/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Geocode cache database path. Set before calling Run().
	DBPath string

	// SQLite database backing the geocode cache.
	DB *sqlite.DB

	// Stdin for the chat REPL and "analyze -". Defaults to os.Stdin.
	Stdin io.Reader

	// Services for end-to-end testing. When set before Run(), the real
	// fetcher, Gemini client, and geocoder are not constructed.
	Analyzer pinpoint.AnalysisService
	Asker    pinpoint.Asker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pinpoint"),
		kong.Description("Extract and map the locations mentioned in news articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pinpoint --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Pipeline logs go to stderr so command output stays parseable.
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if m.Analyzer == nil {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		var fetcher pinpoint.Fetcher
		if cli.Browser {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browserFetcher
		} else {
			fetcher = pinhttp.NewFetcher()
		}
		fetcher = pinslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PINPOINT_DB to use a different database path\n")
			return fmt.Errorf("failed to open geocode cache at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		geoOpts := []nominatim.Option{
			nominatim.WithCache(sqlite.NewGeocodeCacheService(m.DB)),
		}
		if base := os.Getenv("PINPOINT_GEOCODER_URL"); base != "" {
			geoOpts = append(geoOpts, nominatim.WithBaseURL(base))
		}
		geocoder := pinslog.NewLoggingGeocoder(nominatim.NewGeocoder(geoOpts...), logger)

		// Cheap DOM strategies first, heavier extractors after, the
		// largest-block heuristic as a last resort.
		cascade := &pinpoint.Cascade{
			Strategies: []pinpoint.ContentStrategy{
				goquery.NewArticleStrategy(),
				goquery.NewContentClassStrategy(),
				goquery.NewMainStrategy(),
				readability.NewStrategy(),
				trafilatura.NewStrategy(),
				goquery.NewLargestBlockStrategy(),
			},
			Converter: htmltomarkdown.NewConverter(),
		}

		m.Analyzer = &pipeline.Analyzer{
			Fetcher:  fetcher,
			Cascade:  cascade,
			Engine:   extract.NewEngine(gemini.NewExtractor(client)),
			Geocoder: geocoder,
			Logger:   logger,
		}
		m.Asker = gemini.NewAsker(client)
	}

	deps.Analyzer = m.Analyzer
	deps.Asker = m.Asker
	deps.Chat = &chat.Service{
		Analyzer: m.Analyzer,
		Asker:    m.Asker,
		Logger:   logger,
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("PINPOINT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pinpoint.db"
	}
	dir := filepath.Join(home, ".pinpoint")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pinpoint.db")
}
