package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pastescout"
)

// Ensure LoggingListingParser implements pastescout.ListingParser.
var _ pastescout.ListingParser = (*LoggingListingParser)(nil)

// LoggingListingParser wraps a ListingParser with logging.
type LoggingListingParser struct {
	next   pastescout.ListingParser
	logger *slog.Logger
}

// NewLoggingListingParser creates a new LoggingListingParser.
func NewLoggingListingParser(next pastescout.ListingParser, logger *slog.Logger) *LoggingListingParser {
	return &LoggingListingParser{next: next, logger: logger}
}

// ParseListing delegates to the wrapped parser and logs the extraction
// path and any warnings.
func (p *LoggingListingParser) ParseListing(markup string) (l *pastescout.Listing, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(markup), "duration", time.Since(begin), "err", err}
		if l != nil {
			attrs = append(attrs, "path", string(l.Path), "warnings", len(l.Warnings))
			for _, w := range l.Warnings {
				p.logger.Warn("listing warning", "warning", w)
			}
		}
		p.logger.Info("parse listing", attrs...)
	}(time.Now())
	return p.next.ParseListing(markup)
}

// Ensure LoggingAnalyticsParser implements pastescout.AnalyticsParser.
var _ pastescout.AnalyticsParser = (*LoggingAnalyticsParser)(nil)

// LoggingAnalyticsParser wraps an AnalyticsParser with logging.
type LoggingAnalyticsParser struct {
	next   pastescout.AnalyticsParser
	logger *slog.Logger
}

// NewLoggingAnalyticsParser creates a new LoggingAnalyticsParser.
func NewLoggingAnalyticsParser(next pastescout.AnalyticsParser, logger *slog.Logger) *LoggingAnalyticsParser {
	return &LoggingAnalyticsParser{next: next, logger: logger}
}

// ParseAnalytics delegates to the wrapped parser and logs the candidate
// count and selection confidence.
func (p *LoggingAnalyticsParser) ParseAnalytics(text string) (a *pastescout.Analytics, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(text), "duration", time.Since(begin), "err", err}
		if a != nil {
			attrs = append(attrs,
				"candidates", a.Candidates,
				"fields", len(a.Fields),
				"tags", len(a.Tags),
				"low_confidence", a.LowConfidence,
			)
		}
		p.logger.Info("parse analytics", attrs...)
	}(time.Now())
	return p.next.ParseAnalytics(text)
}

// Ensure LoggingKeywordParser implements pastescout.KeywordParser.
var _ pastescout.KeywordParser = (*LoggingKeywordParser)(nil)

// LoggingKeywordParser wraps a KeywordParser with logging.
type LoggingKeywordParser struct {
	next   pastescout.KeywordParser
	logger *slog.Logger
}

// NewLoggingKeywordParser creates a new LoggingKeywordParser.
func NewLoggingKeywordParser(next pastescout.KeywordParser, logger *slog.Logger) *LoggingKeywordParser {
	return &LoggingKeywordParser{next: next, logger: logger}
}

// ParseKeywords delegates to the wrapped parser and logs the entry count.
func (p *LoggingKeywordParser) ParseKeywords(text string) (list *pastescout.KeywordList, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(text), "duration", time.Since(begin), "err", err}
		if list != nil {
			attrs = append(attrs,
				"seed", list.SeedKeyword,
				"country", list.CountryCode,
				"entries", len(list.Entries),
			)
		}
		p.logger.Info("parse keywords", attrs...)
	}(time.Now())
	return p.next.ParseKeywords(text)
}
