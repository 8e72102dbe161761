package main

import (
	"fmt"
	"time"

	"github.com/mkaminski/adlead"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := adlead.ListingFilter{
		HasPhone: c.HasPhone,
		HasEmail: c.HasEmail,
		Offset:   c.Offset,
		Limit:    c.Limit,
	}

	listings, err := deps.Listings.FindListings(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adlead.ErrorMessage(err))
		return err
	}

	if len(listings) == 0 {
		fmt.Fprintln(deps.Stdout, "No listings stored. Use 'adlead run' to scrape a listing index.")
		return nil
	}

	total, err := deps.Listings.CountListings(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adlead.ErrorMessage(err))
		return err
	}

	for _, l := range listings {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			l.CreatedAt.Format(time.DateOnly), orDash(l.Phone), orDash(l.Email), l.URL)
	}
	fmt.Fprintf(deps.Stdout, "showing %d of %d listings\n", len(listings), total)

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
