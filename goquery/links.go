package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkaminski/adlead"
)

// DefaultSelector matches every anchor with an href attribute.
const DefaultSelector = "a[href]"

// Ensure Discoverer implements adlead.URLSource at compile time.
var _ adlead.URLSource = (*Discoverer)(nil)

// Discoverer finds listing URLs on an index page by scanning anchors
// that match a CSS selector and an href path prefix. Classified-ad
// sites typically link every offer under a fixed path, e.g.
// "/s-anzeige/" on kleinanzeigen.de.
type Discoverer struct {
	fetcher    adlead.Fetcher
	selector   string
	pathPrefix string
}

// DiscovererOption configures a Discoverer.
type DiscovererOption func(*Discoverer)

// WithSelector sets the CSS selector for candidate anchors.
// Defaults to DefaultSelector.
func WithSelector(selector string) DiscovererOption {
	return func(d *Discoverer) {
		if selector != "" {
			d.selector = selector
		}
	}
}

// WithPathPrefix keeps only links whose URL path starts with prefix.
// An empty prefix keeps every same-host link.
func WithPathPrefix(prefix string) DiscovererOption {
	return func(d *Discoverer) {
		d.pathPrefix = prefix
	}
}

// NewDiscoverer creates a Discoverer that reads index pages through the
// given fetcher.
func NewDiscoverer(fetcher adlead.Fetcher, opts ...DiscovererOption) *Discoverer {
	d := &Discoverer{
		fetcher:  fetcher,
		selector: DefaultSelector,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover fetches the index page at baseURL and returns the absolute
// listing URLs found on it, in document order, deduplicated. Only links
// on the same host as baseURL are returned.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, adlead.Errorf(adlead.EINVALID, "invalid base URL %q", baseURL)
	}

	html, err := d.fetcher.Fetch(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var urls []string

	doc.Find(d.selector).Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		if resolved.Host != base.Host {
			return
		}
		if d.pathPrefix != "" && !strings.HasPrefix(resolved.Path, d.pathPrefix) {
			return
		}
		resolved.Fragment = ""
		u := resolved.String()
		if seen[u] {
			return
		}
		seen[u] = true
		urls = append(urls, u)
	})

	return urls, nil
}
