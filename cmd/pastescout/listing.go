package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/pastescout"
)

// Run executes the listing command.
func (c *ListingCmd) Run(deps *Dependencies) error {
	markup, err := readPaste(deps, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		return err
	}

	l, err := deps.Listings.ParseListing(markup)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pastescout.ErrorMessage(err))
		return err
	}

	for _, w := range l.Warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}

	if deps.Format == FormatJSON {
		return writeJSON(deps.Stdout, l)
	}
	printListing(deps.Stdout, l)
	return nil
}

func printListing(w io.Writer, l *pastescout.Listing) {
	m := l.Map()
	for _, k := range pastescout.ListingKeys {
		fmt.Fprintf(w, "%s: %s\n", k, m[k])
	}
	fmt.Fprintf(w, "path: %s\n", l.Path)
}
