package mock

import "github.com/mkaminski/adlead"

var _ adlead.ContactExtractor = (*ContactExtractor)(nil)

// ContactExtractor is a mock implementation of adlead.ContactExtractor.
type ContactExtractor struct {
	ExtractFn func(text string) (*adlead.ContactSet, error)
}

func (e *ContactExtractor) Extract(text string) (*adlead.ContactSet, error) {
	return e.ExtractFn(text)
}
