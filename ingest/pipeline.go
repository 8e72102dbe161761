package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/mkaminski/adlead"
	"github.com/mkaminski/adlead/bloom"
	adgoquery "github.com/mkaminski/adlead/goquery"
)

// Dedup filter sizing for one discovery pass.
const (
	dedupExpectedURLs      = 10000
	dedupFalsePositiveRate = 0.01
)

// Pipeline runs a whole scrape end to end: discover listing URLs from
// a base URL, deduplicate, fetch pages concurrently, then ingest them
// through the Runner strictly in discovery order.
type Pipeline struct {
	Source  adlead.URLSource
	Fetcher adlead.Fetcher
	Runner  *Runner
	Limiter *DomainLimiter
	Logger  *slog.Logger

	// Limit caps how many discovered listings are processed; zero means
	// all of them. Discovery order decides which ones make the cut.
	Limit int

	// Concurrency is the number of parallel fetches. Defaults to 4.
	Concurrency int

	// RetryDelays overrides the fetch backoff schedule. Nil uses
	// DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
}

// Run discovers and ingests listings reachable from baseURL. Fetch
// failures become per-page failures in the report; only discovery
// failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, baseURL string) (*Report, error) {
	logger := p.logger()

	urls, err := p.Source.Discover(ctx, baseURL)
	if err != nil {
		return nil, fmt.Errorf("discover listings: %w", err)
	}

	// In-run dedup; cross-run dedup is the store's unique key.
	filter := bloom.NewFilter(dedupExpectedURLs, dedupFalsePositiveRate)
	deduped := urls[:0:0]
	for _, u := range urls {
		if filter.Remember(u) {
			deduped = append(deduped, u)
		}
	}
	urls = deduped

	if p.Limit > 0 && len(urls) > p.Limit {
		urls = urls[:p.Limit]
	}

	logger.Info("discovered listings", "base_url", baseURL, "count", len(urls))

	batch := p.fetchAll(ctx, logger, urls)
	return p.Runner.runBatch(ctx, batch)
}

// fetchAll fetches the URLs concurrently and returns results indexed
// by discovery position, so ingestion can walk them in order.
func (p *Pipeline) fetchAll(ctx context.Context, logger *slog.Logger, urls []string) []fetched {
	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	batch := make([]fetched, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			batch[i] = p.fetchOne(gctx, logger, u)
			return nil
		})
	}
	_ = g.Wait()

	return batch
}

func (p *Pipeline) fetchOne(ctx context.Context, logger *slog.Logger, pageURL string) fetched {
	result := fetched{url: pageURL}

	if p.Limiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			result.err = adlead.Errorf(adlead.EINVALID, "invalid listing URL %q", pageURL)
			return result
		}
		if err := p.Limiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := FetchWithRetry(ctx, pageURL, p.Fetcher.Fetch, p.RetryDelays)
	if err != nil {
		result.err = err
		return result
	}

	logger.Debug("fetched page",
		"url", pageURL,
		"bytes", len(html),
		"fingerprint", fmt.Sprintf("%016x", xxhash.Sum64String(html)),
	)

	result.page = &adlead.RawPage{
		URL:     pageURL,
		Title:   adgoquery.ExtractTitle(html),
		Content: html,
	}
	return result
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
