package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/mkaminski/adlead"
)

// Compile-time interface verification.
var _ adlead.ListingService = (*ListingService)(nil)

// ListingService implements adlead.ListingService using SQLite.
type ListingService struct {
	db *DB
}

// NewListingService creates a new ListingService.
func NewListingService(db *DB) *ListingService {
	return &ListingService{db: db}
}

// UpsertListing inserts the listing unless its URL is already present.
// The unique index on url makes the insert-or-ignore atomic: repeated or
// concurrent calls for one URL resolve to a single Inserted outcome and
// never surface a uniqueness violation.
func (s *ListingService) UpsertListing(ctx context.Context, listing *adlead.Listing) (adlead.InsertOutcome, error) {
	if err := listing.Validate(); err != nil {
		return "", err
	}

	// Second precision so the value round-trips through RFC3339 exactly.
	createdAt := time.Now().UTC().Truncate(time.Second)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO listings (title, url, contact_name, phone, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO NOTHING
	`, listing.Title, listing.URL, listing.ContactName, listing.Phone, listing.Email,
		createdAt.Format(time.RFC3339))
	if err != nil {
		return "", adlead.Errorf(adlead.EUNAVAILABLE, "upsert listing %q: %v", listing.URL, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return "", adlead.Errorf(adlead.EUNAVAILABLE, "upsert listing %q: %v", listing.URL, err)
	}
	if rows == 0 {
		return adlead.AlreadyExists, nil
	}

	listing.CreatedAt = createdAt
	if id, err := res.LastInsertId(); err == nil {
		listing.ID = id
	}

	return adlead.Inserted, nil
}

// FindListingByURL retrieves a listing by its URL.
func (s *ListingService) FindListingByURL(ctx context.Context, url string) (*adlead.Listing, error) {
	var listing adlead.Listing
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, url, contact_name, phone, email, created_at
		FROM listings
		WHERE url = ?
	`, url).Scan(&listing.ID, &listing.Title, &listing.URL, &listing.ContactName,
		&listing.Phone, &listing.Email, &createdAt)

	if err == sql.ErrNoRows {
		return nil, adlead.Errorf(adlead.ENOTFOUND, "listing not found")
	}
	if err != nil {
		return nil, err
	}

	listing.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &listing, nil
}

// FindListings retrieves listings matching the filter, newest first.
func (s *ListingService) FindListings(ctx context.Context, filter adlead.ListingFilter) ([]*adlead.Listing, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, url, contact_name, phone, email, created_at FROM listings WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.HasPhone {
		query.WriteString(" AND phone != ''")
	}
	if filter.HasEmail {
		query.WriteString(" AND email != ''")
	}

	query.WriteString(" ORDER BY created_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []*adlead.Listing
	for rows.Next() {
		var listing adlead.Listing
		var createdAt string

		if err := rows.Scan(&listing.ID, &listing.Title, &listing.URL, &listing.ContactName,
			&listing.Phone, &listing.Email, &createdAt); err != nil {
			return nil, err
		}

		listing.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		listings = append(listings, &listing)
	}

	return listings, rows.Err()
}

// CountListings returns the number of stored listings.
func (s *ListingService) CountListings(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&count)
	return count, err
}
