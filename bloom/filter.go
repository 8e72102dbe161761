// Package bloom provides in-run listing URL deduplication using Bloom
// filters, so a discovery pass never queues the same listing twice.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks listing URLs seen during one pipeline run.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate. A false positive skips a listing; the store's
// unique key would have deduplicated it anyway, so a small rate is
// acceptable.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen reports whether the URL might have been remembered already.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}

// Remember records the URL and reports whether it was new.
func (f *Filter) Remember(url string) bool {
	return !f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of remembered URLs.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
