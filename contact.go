package adlead

// ContactSet holds the deduplicated contact entities extracted from one
// page of text. Both slices preserve first-occurrence order so that
// downstream "first match wins" selection is deterministic; no value
// appears twice even if the source text repeats it.
type ContactSet struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}

// FirstEmail returns the first extracted email, or "" if none was found.
func (c *ContactSet) FirstEmail() string {
	if c == nil || len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0]
}

// FirstPhone returns the first extracted phone number, or "" if none
// was found.
func (c *ContactSet) FirstPhone() string {
	if c == nil || len(c.Phones) == 0 {
		return ""
	}
	return c.Phones[0]
}

// Empty reports whether the set contains no contacts at all.
func (c *ContactSet) Empty() bool {
	return c == nil || (len(c.Emails) == 0 && len(c.Phones) == 0)
}

// ContactExtractor scans normalized text for contact entities.
// Implementations hide the email pattern and the phone numbering-plan
// grammar used to validate and format candidates.
type ContactExtractor interface {
	// Extract returns the contacts found in text. Fragments that look
	// like contacts but fail entity parsing are silently skipped;
	// Extract never fails on unparseable input.
	Extract(text string) (*ContactSet, error)
}
