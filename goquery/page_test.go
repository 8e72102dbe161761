package goquery_test

import (
	"testing"

	"github.com/mkaminski/adlead/goquery"
	"github.com/stretchr/testify/assert"
)

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	t.Run("returns document title", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Nice Flat in Berlin</title></head><body></body></html>`
		assert.Equal(t, "Nice Flat in Berlin", goquery.ExtractTitle(html))
	})

	t.Run("collapses whitespace in title", func(t *testing.T) {
		t.Parallel()

		html := "<html><head><title>\n  Nice\t Flat  </title></head></html>"
		assert.Equal(t, "Nice Flat", goquery.ExtractTitle(html))
	})

	t.Run("returns empty string without title element", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.ExtractTitle("<html><body>no title</body></html>"))
	})
}
