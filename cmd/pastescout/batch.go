package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/excelize"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	pastes := make([]pastescout.Paste, 0, len(c.Files))
	for _, file := range c.Files {
		content, err := readPaste(deps, file)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
			return err
		}

		src := DetectSource(file, content)
		if c.Source != "" && c.Source != "auto" {
			if src, err = pastescout.ParseSource(c.Source); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
				return err
			}
		}
		pastes = append(pastes, pastescout.Paste{Name: file, Source: src, Content: content})
	}

	progress := func(event pastescout.ProgressEvent) {
		switch event.Type {
		case pastescout.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "  Parsing %d pastes\n", event.Total)
		case pastescout.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Name, pastescout.ErrorMessage(event.Error))
		case pastescout.ProgressFinished:
			// Summary printed after the batch completes
		}
	}

	result, err := deps.Runner.Run(deps.Ctx, pastes, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		return err
	}

	if deps.Format == FormatJSON {
		if err := writeJSON(deps.Stdout, jsonOutcomes(result.Outcomes)); err != nil {
			return err
		}
	} else {
		printOutcomes(deps.Stdout, result.Outcomes)
	}

	if c.XLSX != "" {
		if err := writeWorkbook(c.XLSX, result.Outcomes); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing %s: %v\n", c.XLSX, err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "  Wrote %s\n", c.XLSX)
	}

	fmt.Fprintf(deps.Stderr, "  Parsed %d, failed %d, duplicates %d\n", result.Parsed, result.Failed, result.Duplicates)
	if result.Failed > 0 {
		return pastescout.Errorf(pastescout.EINVALID, "%d of %d pastes failed", result.Failed, len(pastes))
	}
	return nil
}

func printOutcomes(w io.Writer, outcomes []pastescout.Outcome) {
	for i, o := range outcomes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%s)\n", o.Name, o.Source)
		switch {
		case o.Err != nil:
			fmt.Fprintf(w, "error: %s\n", pastescout.ErrorMessage(o.Err))
		case o.DuplicateOf != "":
			fmt.Fprintf(w, "duplicate of %s\n", o.DuplicateOf)
		case o.Listing != nil:
			printListing(w, o.Listing)
		case o.Analytics != nil:
			printAnalytics(w, o.Analytics)
		case o.Keywords != nil:
			printKeywords(w, o.Keywords)
		}
	}
}

func writeWorkbook(path string, outcomes []pastescout.Outcome) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := excelize.WriteWorkbook(f, outcomes); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// jsonOutcome adds the parse error message to an outcome's JSON form.
type jsonOutcome struct {
	pastescout.Outcome
	Error string `json:"error,omitempty"`
}

func jsonOutcomes(outcomes []pastescout.Outcome) []jsonOutcome {
	out := make([]jsonOutcome, len(outcomes))
	for i, o := range outcomes {
		out[i] = jsonOutcome{Outcome: o}
		if o.Err != nil {
			out[i].Error = pastescout.ErrorMessage(o.Err)
		}
	}
	return out
}
