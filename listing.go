package adlead

import (
	"context"
	"time"
)

// MaxTitleLen is the maximum stored length of a listing title, in runes.
// Longer titles are truncated without a marker.
const MaxTitleLen = 200

// Listing represents one scraped classified-ad page with its extracted
// contact details. URL is the sole identity key: two listings with the
// same URL are the same listing, and the store guarantees at most one
// row per URL.
type Listing struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	ContactName string    `json:"contactName,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the listing contains invalid fields.
func (l *Listing) Validate() error {
	if l.URL == "" {
		return Errorf(EINVALID, "listing URL required")
	}
	return nil
}

// BuildListing assembles a canonical listing from a page URL, title and
// extracted contacts. The title is truncated to MaxTitleLen runes and
// phone/email take the first element of the corresponding contact slice.
// ContactName is never populated here; it is reserved for a future
// name-extraction capability.
//
// An empty url is a caller error and returns EINVALID, since URL is the
// persistence identity key.
func BuildListing(url, title string, contacts *ContactSet) (*Listing, error) {
	if url == "" {
		return nil, Errorf(EINVALID, "listing URL required")
	}
	if r := []rune(title); len(r) > MaxTitleLen {
		title = string(r[:MaxTitleLen])
	}
	return &Listing{
		Title: title,
		URL:   url,
		Phone: contacts.FirstPhone(),
		Email: contacts.FirstEmail(),
	}, nil
}

// InsertOutcome reports what an idempotent upsert did.
type InsertOutcome string

// Upsert outcomes. AlreadyExists is a normal outcome, not an error.
const (
	Inserted      InsertOutcome = "inserted"
	AlreadyExists InsertOutcome = "already_exists"
)

// ListingService represents a service for persisting and querying listings.
type ListingService interface {
	// UpsertListing inserts the listing unless a row with its URL
	// already exists. Repeated or concurrent calls for the same URL
	// resolve to exactly one Inserted outcome and never surface a
	// uniqueness violation. The store assigns CreatedAt at the moment
	// of first successful insert only.
	UpsertListing(ctx context.Context, listing *Listing) (InsertOutcome, error)

	// FindListingByURL retrieves a listing by its URL.
	// Returns ENOTFOUND if no listing with that URL exists.
	FindListingByURL(ctx context.Context, url string) (*Listing, error)

	// FindListings retrieves listings matching the filter, newest first.
	FindListings(ctx context.Context, filter ListingFilter) ([]*Listing, error)

	// CountListings returns the number of stored listings.
	CountListings(ctx context.Context) (int, error)
}

// ListingFilter represents a filter for FindListings.
type ListingFilter struct {
	URL      *string `json:"url"`
	HasPhone bool    `json:"hasPhone"`
	HasEmail bool    `json:"hasEmail"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
