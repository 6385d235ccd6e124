package main

import (
	"context"
	"io"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/everbee"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Format is FormatText or FormatJSON.
	Format string

	Listings  pastescout.ListingParser
	Analytics pastescout.AnalyticsParser
	Keywords  pastescout.KeywordParser
	Runner    pastescout.BatchRunner

	// Profile is the analytics profile in effect.
	Profile *everbee.Profile
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Format      string `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`
	Today       string `placeholder:"YYYY-MM-DD" env:"PASTESCOUT_TODAY" help:"Date delivery estimates are counted from (default: today)"`
	ProfilePath string `name:"profile" type:"path" env:"PASTESCOUT_PROFILE" help:"YAML file overriding the analytics label tables"`
	Verbose     bool   `short:"v" help:"Log parser activity to stderr"`

	Listing   ListingCmd   `cmd:"" help:"Extract fields from a pasted listing page (HTML)"`
	Analytics AnalyticsCmd `cmd:"" help:"Extract the best product record from pasted analytics text"`
	Keywords  KeywordsCmd  `cmd:"" help:"Extract keyword rows from pasted keyword-research text"`
	Batch     BatchCmd     `cmd:"" help:"Parse many pasted files concurrently"`
	Profile   ProfileCmd   `cmd:"" name:"profile" help:"Print the analytics profile in effect as YAML"`
}

// ListingCmd is the "listing" subcommand.
type ListingCmd struct {
	File string `arg:"" help:"File holding the pasted page, or - for stdin"`
}

// AnalyticsCmd is the "analytics" subcommand.
type AnalyticsCmd struct {
	File string `arg:"" help:"File holding the pasted text, or - for stdin"`
}

// KeywordsCmd is the "keywords" subcommand.
type KeywordsCmd struct {
	File string `arg:"" help:"File holding the pasted text, or - for stdin"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Files       []string `arg:"" help:"Files holding pasted pages"`
	Source      string   `short:"s" enum:"auto,listing,analytics,keywords" default:"auto" help:"Source of every file (auto detects per file)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent parse limit"`
	XLSX        string   `name:"xlsx" type:"path" help:"Also write outcomes to this Excel workbook"`
}

// ProfileCmd is the "profile" subcommand.
type ProfileCmd struct{}
