// Package phonenumbers provides contact extraction backed by the
// libphonenumber numbering-plan data. Emails are matched with a regular
// expression; phone candidates are matched loosely and then validated
// and formatted through the numbering library, because national phone
// formats are too irregular for a single regex to get right.
package phonenumbers

import (
	"regexp"

	"github.com/nyaruka/phonenumbers"

	"github.com/mkaminski/adlead"
)

// DefaultRegion is the numbering region assumed for phone numbers
// written without a country code.
const DefaultRegion = "DE"

// emailRe matches an email-shaped token: local part, @, domain labels,
// and an alphabetic TLD of at least two characters. Anchored on
// character classes rather than word boundaries so punctuation around a
// match is tolerated.
var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// candidateRe matches phone-shaped substrings: an optional leading +,
// then digits mixed with common separators, ending on a digit. Candidates
// are only suggestions; the numbering library decides what is a number.
var candidateRe = regexp.MustCompile(`\+?\d[\d\s\-/().]{5,}\d`)

// Ensure Extractor implements adlead.ContactExtractor at compile time.
var _ adlead.ContactExtractor = (*Extractor)(nil)

// Extractor scans normalized text for email addresses and phone numbers.
// Results are deduplicated and kept in first-occurrence order, and phone
// numbers are reformatted into international display form.
type Extractor struct {
	region string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRegion sets the default region for phone numbers written without
// a country code. Defaults to DefaultRegion.
func WithRegion(region string) Option {
	return func(e *Extractor) {
		if region != "" {
			e.region = region
		}
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{region: DefaultRegion}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the contacts found in text. Candidate fragments the
// numbering grammar cannot parse into a valid number are silently
// skipped; Extract never fails on unparseable input.
func (e *Extractor) Extract(text string) (*adlead.ContactSet, error) {
	return &adlead.ContactSet{
		Emails: e.extractEmails(text),
		Phones: e.extractPhones(text),
	}, nil
}

func (e *Extractor) extractEmails(text string) []string {
	seen := make(map[string]bool)
	var emails []string
	for _, match := range emailRe.FindAllString(text, -1) {
		if seen[match] {
			continue
		}
		seen[match] = true
		emails = append(emails, match)
	}
	return emails
}

func (e *Extractor) extractPhones(text string) []string {
	// Dedup by E.164 so the same number in different spellings
	// collapses to one entry, keeping the first occurrence.
	seen := make(map[string]bool)
	var phones []string
	for _, candidate := range candidateRe.FindAllString(text, -1) {
		num, err := phonenumbers.Parse(candidate, e.region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(num) {
			continue
		}
		key := phonenumbers.Format(num, phonenumbers.E164)
		if seen[key] {
			continue
		}
		seen[key] = true
		phones = append(phones, phonenumbers.Format(num, phonenumbers.INTERNATIONAL))
	}
	return phones
}
