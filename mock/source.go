package mock

import (
	"context"

	"github.com/mkaminski/adlead"
)

var _ adlead.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of adlead.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}
