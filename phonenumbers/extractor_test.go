package phonenumbers_test

import (
	"strings"
	"testing"

	"github.com/mkaminski/adlead"
	"github.com/mkaminski/adlead/phonenumbers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("finds email and phone in listing text", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		contacts, err := e.Extract("Contact: Jane, jane@ex.com, +49 30 1234567")
		require.NoError(t, err)

		assert.Equal(t, []string{"jane@ex.com"}, contacts.Emails)
		assert.Equal(t, []string{"+49 30 1234567"}, contacts.Phones)
	})

	t.Run("deduplicates repeated emails", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		contacts, err := e.Extract("a@x.com a@x.com")
		require.NoError(t, err)

		assert.Equal(t, []string{"a@x.com"}, contacts.Emails)
	})

	t.Run("tolerates punctuation around emails", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		contacts, err := e.Extract("Write to (jane.doe+ads@ex-mail.de), please.")
		require.NoError(t, err)

		assert.Equal(t, []string{"jane.doe+ads@ex-mail.de"}, contacts.Emails)
	})

	t.Run("formats national numbers into international form", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		contacts, err := e.Extract("Tel: 030 1234567")
		require.NoError(t, err)

		assert.Equal(t, []string{"+49 30 1234567"}, contacts.Phones)
	})

	t.Run("collapses different spellings of one number", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		contacts, err := e.Extract("Call +49 30 1234567 or 030/1234567")
		require.NoError(t, err)

		assert.Equal(t, []string{"+49 30 1234567"}, contacts.Phones)
	})

	t.Run("skips fragments the grammar rejects", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		contacts, err := e.Extract("Order no. 0000000000, ref 999 999 999 999 999")
		require.NoError(t, err)

		assert.Empty(t, contacts.Phones)
		assert.Empty(t, contacts.Emails)
	})

	t.Run("honours explicit country codes over the region", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor(phonenumbers.WithRegion("DE"))
		contacts, err := e.Extract("US office: +1 212 555 0123")
		require.NoError(t, err)

		require.Len(t, contacts.Phones, 1)
		assert.True(t, strings.HasPrefix(contacts.Phones[0], "+1 "), "got %q", contacts.Phones[0])
	})

	t.Run("is deterministic across runs", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		text := "b@x.com a@x.com, 030 1234567, +49 171 2345678, b@x.com"

		first, err := e.Extract(text)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := e.Extract(text)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}

		// First-occurrence order is the downstream tiebreak.
		assert.Equal(t, []string{"b@x.com", "a@x.com"}, first.Emails)
	})

	t.Run("empty text yields empty set", func(t *testing.T) {
		t.Parallel()

		e := phonenumbers.NewExtractor()
		contacts, err := e.Extract("")
		require.NoError(t, err)

		assert.True(t, contacts.Empty())
		var _ adlead.ContactExtractor = e
	})
}
