package main

import (
	"fmt"

	"github.com/mkaminski/adlead"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	report, err := deps.Pipeline.Run(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", adlead.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "processed %d listings: %d ok, %d failed\n",
		report.Succeeded+report.Failed, report.Succeeded, report.Failed)

	for _, pageErr := range report.Errors {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", pageErr.URL, adlead.ErrorMessage(pageErr.Err))
	}

	return nil
}
