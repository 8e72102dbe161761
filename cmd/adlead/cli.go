package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mkaminski/adlead"
	"github.com/mkaminski/adlead/ingest"
	"github.com/mkaminski/adlead/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Listings adlead.ListingService
	Pipeline *ingest.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Run  RunCmd  `cmd:"" help:"Scrape a listing index and save contact details"`
	List ListCmd `cmd:"" help:"List saved listings"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL         string        `arg:"" help:"Listing index or category URL"`
	Limit       int           `short:"l" default:"5" help:"Max listings to process per run (0 = all)"`
	Selector    string        `help:"CSS selector for listing links on the index page"`
	PathPrefix  string        `help:"Keep only links under this path, e.g. /s-anzeige/"`
	Sitemap     bool          `help:"Discover listings from XML sitemaps instead of the index page"`
	Browser     bool          `help:"Render pages with headless Chrome (for JavaScript-only sites)"`
	Region      string        `default:"DE" env:"ADLEAD_REGION" help:"Default region for national phone numbers"`
	Rate        float64       `default:"1" help:"Max requests per second per domain"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	PageTimeout time.Duration `default:"30s" help:"Per-page processing timeout"`
	DryRun      bool          `help:"Extract contacts without saving or notifying"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	HasPhone bool `help:"Only listings with a phone number"`
	HasEmail bool `help:"Only listings with an email address"`
	Limit    int  `default:"20" help:"Max listings to show"`
	Offset   int  `help:"Number of listings to skip"`
}
