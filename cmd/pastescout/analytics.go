package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/pastescout"
)

// Run executes the analytics command.
func (c *AnalyticsCmd) Run(deps *Dependencies) error {
	text, err := readPaste(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		return err
	}

	a, err := deps.Analytics.ParseAnalytics(text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		if pastescout.ErrorCode(err) == pastescout.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: Copy the whole analytics page again and retry")
		}
		return err
	}

	if a.LowConfidence {
		fmt.Fprintf(deps.Stderr, "warning: no candidate carried a ranking value, kept the first of %d\n", a.Candidates)
	}

	if deps.Format == FormatJSON {
		return writeJSON(deps.Stdout, a)
	}
	printAnalytics(deps.Stdout, a)
	return nil
}

func printAnalytics(w io.Writer, a *pastescout.Analytics) {
	for _, k := range a.Fields.Keys() {
		fmt.Fprintf(w, "%s: %s\n", k, a.Fields.Text(k))
	}
	if len(a.Tags) > 0 {
		fmt.Fprintf(w, "\nTags (%d):\n", len(a.Tags))
		for _, t := range a.Tags {
			fmt.Fprintf(w, "  %s  volume=%d competition=%d level=%s score=%g\n",
				t.Name, t.Volume, t.Competition, t.Level, t.Score)
		}
	}
	if a.Notes != "" {
		fmt.Fprintf(w, "\n%s\n", a.Notes)
	}
}
