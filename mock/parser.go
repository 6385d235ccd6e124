package mock

import (
	"github.com/fwojciec/pastescout"
)

var _ pastescout.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of pastescout.ListingParser.
type ListingParser struct {
	ParseListingFn func(markup string) (*pastescout.Listing, error)
}

func (p *ListingParser) ParseListing(markup string) (*pastescout.Listing, error) {
	return p.ParseListingFn(markup)
}

var _ pastescout.AnalyticsParser = (*AnalyticsParser)(nil)

// AnalyticsParser is a mock implementation of pastescout.AnalyticsParser.
type AnalyticsParser struct {
	ParseAnalyticsFn func(text string) (*pastescout.Analytics, error)
}

func (p *AnalyticsParser) ParseAnalytics(text string) (*pastescout.Analytics, error) {
	return p.ParseAnalyticsFn(text)
}

var _ pastescout.KeywordParser = (*KeywordParser)(nil)

// KeywordParser is a mock implementation of pastescout.KeywordParser.
type KeywordParser struct {
	ParseKeywordsFn func(text string) (*pastescout.KeywordList, error)
}

func (p *KeywordParser) ParseKeywords(text string) (*pastescout.KeywordList, error) {
	return p.ParseKeywordsFn(text)
}
