// Package noop provides degraded no-op implementations used when a
// collaborator's credentials are missing. Operations warn once per
// instance and otherwise succeed, carrying the pipeline's best-effort
// philosophy through configuration gaps.
package noop

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mkaminski/adlead"
)

// Ensure interface compliance at compile time.
var (
	_ adlead.ListingService = (*ListingService)(nil)
	_ adlead.Notifier       = (*Notifier)(nil)
)

// ListingService discards every write and finds nothing. Used when no
// database path is configured.
type ListingService struct {
	logger *slog.Logger
	once   sync.Once
}

// NewListingService creates a no-op ListingService.
func NewListingService(logger *slog.Logger) *ListingService {
	return &ListingService{logger: logger}
}

func (s *ListingService) warn() {
	s.once.Do(func() {
		s.logger.Warn("no database configured, listings will not be persisted")
	})
}

// UpsertListing validates the listing, warns once, and reports Inserted
// without persisting anything.
func (s *ListingService) UpsertListing(_ context.Context, listing *adlead.Listing) (adlead.InsertOutcome, error) {
	if err := listing.Validate(); err != nil {
		return "", err
	}
	s.warn()
	return adlead.Inserted, nil
}

// FindListingByURL always reports ENOTFOUND.
func (s *ListingService) FindListingByURL(_ context.Context, _ string) (*adlead.Listing, error) {
	s.warn()
	return nil, adlead.Errorf(adlead.ENOTFOUND, "listing not found")
}

// FindListings always returns no results.
func (s *ListingService) FindListings(_ context.Context, _ adlead.ListingFilter) ([]*adlead.Listing, error) {
	s.warn()
	return nil, nil
}

// CountListings always returns zero.
func (s *ListingService) CountListings(_ context.Context) (int, error) {
	s.warn()
	return 0, nil
}

// Notifier drops every message. Used when no notification channel is
// configured.
type Notifier struct {
	logger *slog.Logger
	once   sync.Once
}

// NewNotifier creates a no-op Notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Notify warns once and discards the message.
func (n *Notifier) Notify(_ context.Context, _ string) error {
	n.once.Do(func() {
		n.logger.Warn("no notification channel configured, messages will be dropped")
	})
	return nil
}
