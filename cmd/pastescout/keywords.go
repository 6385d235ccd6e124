package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fwojciec/pastescout"
)

// Run executes the keywords command.
func (c *KeywordsCmd) Run(deps *Dependencies) error {
	text, err := readPaste(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		return err
	}

	list, err := deps.Keywords.ParseKeywords(text)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		return err
	}

	if deps.Format == FormatJSON {
		return writeJSON(deps.Stdout, list)
	}
	printKeywords(deps.Stdout, list)
	return nil
}

func printKeywords(w io.Writer, list *pastescout.KeywordList) {
	if list.SeedKeyword != "" {
		fmt.Fprintf(w, "Seed: %s\n", list.SeedKeyword)
	}
	fmt.Fprintf(w, "Country: %s\n", list.CountryCode)
	if len(list.Entries) == 0 {
		fmt.Fprintln(w, "No keyword rows found.")
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEYWORD\tSEARCHES\tCLICKS\tCTR\tCOMPETITION\tGOOGLE")
	for _, e := range list.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Keyword, e.AvgSearches, e.AvgClicks, e.AvgCTR, e.EtsyCompetition, e.GoogleSearches)
	}
	_ = tw.Flush()
}
