package ingest_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mkaminski/adlead"
	"github.com/mkaminski/adlead/ingest"
	"github.com/mkaminski/adlead/mock"
	"github.com/mkaminski/adlead/phonenumbers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryListings is a tiny in-memory ListingService for runner tests.
func memoryListings() (*mock.ListingService, *sync.Map) {
	var stored sync.Map
	svc := &mock.ListingService{
		UpsertListingFn: func(_ context.Context, listing *adlead.Listing) (adlead.InsertOutcome, error) {
			if err := listing.Validate(); err != nil {
				return "", err
			}
			if _, loaded := stored.LoadOrStore(listing.URL, listing); loaded {
				return adlead.AlreadyExists, nil
			}
			return adlead.Inserted, nil
		},
	}
	return svc, &stored
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	t.Run("processes pages end to end", func(t *testing.T) {
		t.Parallel()

		listings, stored := memoryListings()
		r := &ingest.Runner{
			Extractor: phonenumbers.NewExtractor(),
			Listings:  listings,
		}

		report, err := r.Run(context.Background(), []adlead.RawPage{{
			URL:     "https://ex/1",
			Title:   "Nice Flat",
			Content: "<p>Contact: Jane, jane@ex.com, +49 30 1234567</p>",
		}})
		require.NoError(t, err)

		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 0, report.Failed)
		assert.NotEmpty(t, report.RunID)

		v, ok := stored.Load("https://ex/1")
		require.True(t, ok)
		listing := v.(*adlead.Listing)
		assert.Equal(t, "Nice Flat", listing.Title)
		assert.Equal(t, "jane@ex.com", listing.Email)
		assert.Equal(t, "+49 30 1234567", listing.Phone)
		assert.Empty(t, listing.ContactName)
	})

	t.Run("isolates a failing page and preserves error order", func(t *testing.T) {
		t.Parallel()

		listings := &mock.ListingService{
			UpsertListingFn: func(_ context.Context, listing *adlead.Listing) (adlead.InsertOutcome, error) {
				if listing.URL == "https://ex/2" {
					return "", adlead.Errorf(adlead.EUNAVAILABLE, "store down")
				}
				return adlead.Inserted, nil
			},
		}
		r := &ingest.Runner{
			Extractor: phonenumbers.NewExtractor(),
			Listings:  listings,
		}

		report, err := r.Run(context.Background(), []adlead.RawPage{
			{URL: "https://ex/1", Title: "One", Content: "a@x.com"},
			{URL: "https://ex/2", Title: "Two", Content: "b@x.com"},
			{URL: "https://ex/3", Title: "Three", Content: "c@x.com"},
		})
		require.NoError(t, err)

		assert.Equal(t, 2, report.Succeeded)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, "https://ex/2", report.Errors[0].URL)
	})

	t.Run("rerun reports AlreadyExists pages as successes", func(t *testing.T) {
		t.Parallel()

		listings, _ := memoryListings()
		r := &ingest.Runner{
			Extractor: phonenumbers.NewExtractor(),
			Listings:  listings,
		}
		pages := []adlead.RawPage{
			{URL: "https://ex/1", Title: "One", Content: "a@x.com"},
			{URL: "https://ex/2", Title: "Two", Content: "b@x.com"},
		}

		first, err := r.Run(context.Background(), pages)
		require.NoError(t, err)
		assert.Equal(t, 2, first.Succeeded)

		second, err := r.Run(context.Background(), pages)
		require.NoError(t, err)
		assert.Equal(t, 2, second.Succeeded)
		assert.Equal(t, 0, second.Failed)
	})

	t.Run("notifies on new inserts only", func(t *testing.T) {
		t.Parallel()

		listings, _ := memoryListings()
		var mu sync.Mutex
		var messages []string
		notifier := &mock.Notifier{
			NotifyFn: func(_ context.Context, message string) error {
				mu.Lock()
				defer mu.Unlock()
				messages = append(messages, message)
				return nil
			},
		}
		r := &ingest.Runner{
			Extractor: phonenumbers.NewExtractor(),
			Listings:  listings,
			Notifier:  notifier,
		}
		pages := []adlead.RawPage{{URL: "https://ex/1", Title: "Nice <Flat>", Content: ""}}

		_, err := r.Run(context.Background(), pages)
		require.NoError(t, err)
		_, err = r.Run(context.Background(), pages)
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, messages, 1, "AlreadyExists must not notify")
		assert.Contains(t, messages[0], "New listing saved")
		assert.Contains(t, messages[0], "Nice &lt;Flat&gt;", "titles are HTML-escaped")
		assert.Contains(t, messages[0], "https://ex/1")
	})

	t.Run("notification failure is not a page failure", func(t *testing.T) {
		t.Parallel()

		listings, _ := memoryListings()
		notifier := &mock.Notifier{
			NotifyFn: func(_ context.Context, _ string) error {
				return adlead.Errorf(adlead.EUNAVAILABLE, "channel down")
			},
		}
		r := &ingest.Runner{
			Extractor: phonenumbers.NewExtractor(),
			Listings:  listings,
			Notifier:  notifier,
		}

		report, err := r.Run(context.Background(), []adlead.RawPage{
			{URL: "https://ex/1", Title: "One", Content: ""},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 0, report.Failed)
	})

	t.Run("empty page URL fails that page only", func(t *testing.T) {
		t.Parallel()

		listings, _ := memoryListings()
		r := &ingest.Runner{
			Extractor: phonenumbers.NewExtractor(),
			Listings:  listings,
		}

		report, err := r.Run(context.Background(), []adlead.RawPage{
			{URL: "", Title: "Broken", Content: ""},
			{URL: "https://ex/2", Title: "Fine", Content: ""},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, report.Succeeded)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, adlead.EINVALID, adlead.ErrorCode(report.Errors[0].Err))
	})

	t.Run("page timeout is a page failure, not a batch failure", func(t *testing.T) {
		t.Parallel()

		listings := &mock.ListingService{
			UpsertListingFn: func(ctx context.Context, _ *adlead.Listing) (adlead.InsertOutcome, error) {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(5 * time.Second):
					return adlead.Inserted, nil
				}
			},
		}
		r := &ingest.Runner{
			Extractor:   phonenumbers.NewExtractor(),
			Listings:    listings,
			PageTimeout: 20 * time.Millisecond,
		}

		report, err := r.Run(context.Background(), []adlead.RawPage{
			{URL: "https://ex/slow", Title: "Slow", Content: ""},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failed)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, "https://ex/slow", report.Errors[0].URL)
	})
}
