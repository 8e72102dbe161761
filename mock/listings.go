// Package mock provides hand-written mock implementations of the
// adlead service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/mkaminski/adlead"
)

var _ adlead.ListingService = (*ListingService)(nil)

// ListingService is a mock implementation of adlead.ListingService.
type ListingService struct {
	UpsertListingFn    func(ctx context.Context, listing *adlead.Listing) (adlead.InsertOutcome, error)
	FindListingByURLFn func(ctx context.Context, url string) (*adlead.Listing, error)
	FindListingsFn     func(ctx context.Context, filter adlead.ListingFilter) ([]*adlead.Listing, error)
	CountListingsFn    func(ctx context.Context) (int, error)
}

func (s *ListingService) UpsertListing(ctx context.Context, listing *adlead.Listing) (adlead.InsertOutcome, error) {
	return s.UpsertListingFn(ctx, listing)
}

func (s *ListingService) FindListingByURL(ctx context.Context, url string) (*adlead.Listing, error) {
	return s.FindListingByURLFn(ctx, url)
}

func (s *ListingService) FindListings(ctx context.Context, filter adlead.ListingFilter) ([]*adlead.Listing, error) {
	return s.FindListingsFn(ctx, filter)
}

func (s *ListingService) CountListings(ctx context.Context) (int, error) {
	return s.CountListingsFn(ctx)
}
