// Package slog provides log/slog-based logging decorators for adlead
// services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkaminski/adlead"
)

// Ensure ListingService implements adlead.ListingService.
var _ adlead.ListingService = (*ListingService)(nil)

// ListingService wraps an adlead.ListingService with logging of upsert
// outcomes and durations.
type ListingService struct {
	next   adlead.ListingService
	logger *slog.Logger
}

// NewListingService creates a new logging ListingService.
func NewListingService(next adlead.ListingService, logger *slog.Logger) *ListingService {
	return &ListingService{next: next, logger: logger}
}

// UpsertListing logs the outcome and delegates to the wrapped service.
func (s *ListingService) UpsertListing(ctx context.Context, listing *adlead.Listing) (outcome adlead.InsertOutcome, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("upsert listing",
			"url", listing.URL,
			"outcome", string(outcome),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertListing(ctx, listing)
}

// FindListingByURL delegates to the wrapped service.
func (s *ListingService) FindListingByURL(ctx context.Context, url string) (*adlead.Listing, error) {
	return s.next.FindListingByURL(ctx, url)
}

// FindListings delegates to the wrapped service.
func (s *ListingService) FindListings(ctx context.Context, filter adlead.ListingFilter) ([]*adlead.Listing, error) {
	return s.next.FindListings(ctx, filter)
}

// CountListings delegates to the wrapped service.
func (s *ListingService) CountListings(ctx context.Context) (int, error) {
	return s.next.CountListings(ctx)
}
