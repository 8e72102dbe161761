package rod

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/mkaminski/adlead"
)

// Ensure LoggingFetcher implements adlead.Fetcher.
var _ adlead.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with render logging. Browser fetches
// are the slow path of a scrape, so each one records how large the
// rendered document came out and whether a body element survived the
// JavaScript stage.
type LoggingFetcher struct {
	next   adlead.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next adlead.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the rendered page size and duration and delegates to the
// wrapped fetcher. A rendered document with no body element usually
// means the site served a bot interstitial instead of the listing.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("rendered listing page",
			"url", url,
			"rendered_bytes", len(html),
			"has_body", strings.Contains(html, "<body"),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
