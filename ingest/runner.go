// Package ingest provides the contact ingestion pipeline: it drives
// extraction over fetched listing pages and commits the resulting
// records to storage under an at-most-once-per-URL guarantee.
package ingest

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkaminski/adlead"
)

// DefaultNotifyTimeout bounds a detached notification attempt.
const DefaultNotifyTimeout = 10 * time.Second

// Runner processes a batch of fetched listing pages in input order.
// Each page runs normalize → extract → build → upsert in isolation: a
// failure is recorded and the batch moves on, so one bad page never
// aborts the run.
type Runner struct {
	Extractor adlead.ContactExtractor
	Listings  adlead.ListingService
	Notifier  adlead.Notifier
	Logger    *slog.Logger

	// PageTimeout bounds processing of a single page. Zero means no
	// per-page timeout.
	PageTimeout time.Duration
}

// PageError records why one page failed, in input order.
type PageError struct {
	URL string
	Err error
}

// Report holds the outcome of one batch run.
type Report struct {
	RunID     string
	Succeeded int
	Failed    int
	Errors    []PageError
}

// fetched is one slot of a batch: either a page or the error that
// prevented fetching it. A fetch failure counts as a page failure.
type fetched struct {
	url  string
	page *adlead.RawPage
	err  error
}

// Run processes pages strictly in input order and returns a report
// with per-page outcomes. Re-running the same pages yields
// AlreadyExists outcomes, which still count as successes.
func (r *Runner) Run(ctx context.Context, pages []adlead.RawPage) (*Report, error) {
	batch := make([]fetched, len(pages))
	for i := range pages {
		batch[i] = fetched{url: pages[i].URL, page: &pages[i]}
	}
	return r.runBatch(ctx, batch)
}

func (r *Runner) runBatch(ctx context.Context, batch []fetched) (*Report, error) {
	report := &Report{RunID: uuid.New().String()}
	logger := r.logger().With("run_id", report.RunID)

	// Notifications are detached from page processing; Run still waits
	// for them before returning so no goroutine outlives the batch.
	var notifications sync.WaitGroup
	defer notifications.Wait()

	for _, f := range batch {
		err := f.err
		if err == nil {
			err = r.processPage(ctx, logger, &notifications, f.page)
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, PageError{URL: f.url, Err: err})
			logger.Warn("page failed", "url", f.url, "err", err)
			continue
		}
		report.Succeeded++
	}

	logger.Info("batch finished",
		"pages", len(batch),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
	)

	return report, nil
}

// processPage runs the extraction pipeline for one page and upserts
// the resulting listing.
func (r *Runner) processPage(ctx context.Context, logger *slog.Logger, notifications *sync.WaitGroup, page *adlead.RawPage) error {
	if r.PageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.PageTimeout)
		defer cancel()
	}

	text := adlead.NormalizeText(page.Content)

	contacts, err := r.Extractor.Extract(text)
	if err != nil {
		return fmt.Errorf("extract contacts: %w", err)
	}

	listing, err := adlead.BuildListing(page.URL, page.Title, contacts)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	outcome, err := r.Listings.UpsertListing(ctx, listing)
	if err != nil {
		return fmt.Errorf("upsert listing: %w", err)
	}

	if outcome == adlead.AlreadyExists {
		logger.Debug("listing already stored", "url", listing.URL)
		return nil
	}

	logger.Info("listing stored",
		"url", listing.URL,
		"title", listing.Title,
		"has_phone", listing.Phone != "",
		"has_email", listing.Email != "",
	)
	r.notify(ctx, logger, notifications, listing)

	return nil
}

// notify dispatches a best-effort notification for a newly stored
// listing. Failures are logged and never fail the page: notification
// is not part of the ingestion guarantee.
func (r *Runner) notify(ctx context.Context, logger *slog.Logger, notifications *sync.WaitGroup, listing *adlead.Listing) {
	if r.Notifier == nil {
		return
	}

	message := fmt.Sprintf("New listing saved: <b>%s</b>\n%s",
		html.EscapeString(listing.Title), listing.URL)

	notifications.Add(1)
	go func() {
		defer notifications.Done()

		// Detached from the page context so a slow channel cannot
		// block or cancel pipeline progress.
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultNotifyTimeout)
		defer cancel()

		if err := r.Notifier.Notify(nctx, message); err != nil {
			logger.Warn("notification failed", "url", listing.URL, "err", err)
		}
	}()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
