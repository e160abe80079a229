package main

import (
	"context"
	"io"

	"github.com/fwojciec/pinpoint"
	"github.com/fwojciec/pinpoint/chat"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    io.Reader
	Analyzer pinpoint.AnalysisService
	Asker    pinpoint.Asker
	Chat     *chat.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Show pipeline logs on stderr"`
	Browser bool `help:"Fetch pages with a headless browser (for JavaScript-rendered sites)"`

	Analyze AnalyzeCmd `cmd:"" help:"Extract and geocode the locations mentioned in an article"`
	Ask     AskCmd     `cmd:"" help:"Analyze an article and answer a single question about its locations"`
	Export  ExportCmd  `cmd:"" help:"Analyze an article and export its locations as JSON or KML"`
	Chat    ChatCmd    `cmd:"" help:"Start an interactive session for articles and follow-up questions"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	Input  string `arg:"" help:"Article URL, or '-' to read article text from stdin"`
	Format string `short:"f" default:"text" enum:"text,json,kml" help:"Output format (text, json, kml)"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Input    string `arg:"" help:"Article URL, or '-' to read article text from stdin"`
	Question string `arg:"" help:"Question to ask about the article's locations"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Input  string `arg:"" help:"Article URL, or '-' to read article text from stdin"`
	Format string `short:"f" default:"json" enum:"json,kml" help:"Export format (json, kml)"`
	Output string `short:"o" default:"-" help:"Output file, or '-' for stdout"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}
