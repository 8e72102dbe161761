package adlead

import "context"

// RawPage is one fetched listing page, as delivered by the upstream
// fetch collaborator in discovery order. It is consumed once per
// pipeline run and never persisted.
type RawPage struct {
	URL     string // absolute, non-empty
	Title   string
	Content string // raw markup or rendered text
}

// Fetcher retrieves HTML from listing URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// listings or plain HTTP for static ones.
type Fetcher interface {
	// Fetch retrieves the page content for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// URLSource discovers listing URLs from a site, in discovery order.
// Implementations hide index-page scraping vs sitemap parsing.
type URLSource interface {
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
