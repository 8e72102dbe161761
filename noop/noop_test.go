package noop_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mkaminski/adlead"
	"github.com/mkaminski/adlead/noop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingService(t *testing.T) {
	t.Parallel()

	t.Run("reports Inserted without persisting", func(t *testing.T) {
		t.Parallel()

		svc := noop.NewListingService(slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx := context.Background()

		outcome, err := svc.UpsertListing(ctx, &adlead.Listing{URL: "https://ex/1"})
		require.NoError(t, err)
		assert.Equal(t, adlead.Inserted, outcome)

		_, err = svc.FindListingByURL(ctx, "https://ex/1")
		assert.Equal(t, adlead.ENOTFOUND, adlead.ErrorCode(err))

		count, err := svc.CountListings(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("still validates input", func(t *testing.T) {
		t.Parallel()

		svc := noop.NewListingService(slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, err := svc.UpsertListing(context.Background(), &adlead.Listing{})
		assert.Equal(t, adlead.EINVALID, adlead.ErrorCode(err))
	})

	t.Run("warns exactly once", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		svc := noop.NewListingService(slog.New(slog.NewTextHandler(&buf, nil)))
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			_, err := svc.UpsertListing(ctx, &adlead.Listing{URL: "https://ex/1"})
			require.NoError(t, err)
		}

		assert.Equal(t, 1, strings.Count(buf.String(), "no database configured"))
	})
}

func TestNotifier(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := noop.NewNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, n.Notify(context.Background(), "one"))
	require.NoError(t, n.Notify(context.Background(), "two"))

	assert.Equal(t, 1, strings.Count(buf.String(), "no notification channel configured"))
}
