package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/mkaminski/adlead"
	adgoquery "github.com/mkaminski/adlead/goquery"
	adhttp "github.com/mkaminski/adlead/http"
	"github.com/mkaminski/adlead/ingest"
	"github.com/mkaminski/adlead/noop"
	"github.com/mkaminski/adlead/phonenumbers"
	"github.com/mkaminski/adlead/rod"
	adslog "github.com/mkaminski/adlead/slog"
	"github.com/mkaminski/adlead/sqlite"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Listing service for end-to-end testing.
	ListingService adlead.ListingService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("adlead"),
		kong.Description("Scrape classified-ad listings and extract contact details."),
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
		return fmt.Errorf("no command specified. Run 'adlead --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ADLEAD_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ListingService = adslog.NewListingService(sqlite.NewListingService(m.DB), logger)
	deps.DB = m.DB
	deps.Listings = m.ListingService

	// Wire command-specific dependencies based on command
	if cmd == "run" {
		listings := deps.Listings
		var notifier adlead.Notifier

		if cli.Run.DryRun {
			listings = noop.NewListingService(logger)
			notifier = noop.NewNotifier(logger)
		} else if token, chatID := os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"); token != "" && chatID != "" {
			notifier = adslog.NewNotifier(adhttp.NewNotifier(token, chatID), logger)
		} else {
			notifier = noop.NewNotifier(logger)
		}

		var fetcher adlead.Fetcher
		if cli.Run.Browser {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rod.NewLoggingFetcher(browserFetcher, logger)
		} else {
			fetcher = adhttp.NewFetcher()
		}
		defer fetcher.Close()

		var source adlead.URLSource
		if cli.Run.Sitemap {
			source = adhttp.NewSitemapSource(nil)
		} else {
			var opts []adgoquery.DiscovererOption
			if cli.Run.Selector != "" {
				opts = append(opts, adgoquery.WithSelector(cli.Run.Selector))
			}
			if cli.Run.PathPrefix != "" {
				opts = append(opts, adgoquery.WithPathPrefix(cli.Run.PathPrefix))
			}
			source = adgoquery.NewDiscoverer(fetcher, opts...)
		}

		deps.Pipeline = &ingest.Pipeline{
			Source:  source,
			Fetcher: fetcher,
			Runner: &ingest.Runner{
				Extractor:   phonenumbers.NewExtractor(phonenumbers.WithRegion(cli.Run.Region)),
				Listings:    listings,
				Notifier:    notifier,
				Logger:      logger,
				PageTimeout: cli.Run.PageTimeout,
			},
			Limiter:     ingest.NewDomainLimiter(cli.Run.Rate),
			Logger:      logger,
			Limit:       cli.Run.Limit,
			Concurrency: cli.Run.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("ADLEAD_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "adlead.db"
	}
	dir := filepath.Join(home, ".adlead")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "adlead.db")
}
