// Package goquery provides HTML collaborators for the ingestion
// pipeline: page title extraction and listing link discovery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkaminski/adlead"
)

// ExtractTitle returns the page title from raw HTML, whitespace-collapsed.
// Returns "" when the document has no <title> element or the markup
// cannot be parsed.
func ExtractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return adlead.NormalizeText(doc.Find("title").First().Text())
}
