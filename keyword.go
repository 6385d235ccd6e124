package pastescout

// UnknownCountry is reported when the keyword page names no country.
const UnknownCountry = "Unknown"

// KeywordEntry is one row of a keyword-research table. Metric values are
// kept as displayed ("1,234", "< 20", "N/A").
type KeywordEntry struct {
	Keyword         string `json:"keyword"`
	AvgSearches     string `json:"avg_searches"`
	AvgClicks       string `json:"avg_clicks"`
	AvgCTR          string `json:"avg_ctr"`
	EtsyCompetition string `json:"etsy_competition"`
	GoogleSearches  string `json:"google_searches"`
}

// KeywordList is the result of parsing a keyword-research page.
type KeywordList struct {
	// SeedKeyword is empty when the page names no seed keyword.
	SeedKeyword string         `json:"seed_keyword,omitempty"`
	CountryCode string         `json:"country_code"`
	Entries     []KeywordEntry `json:"entries"`
}

// KeywordParser extracts keyword rows from pasted keyword-research text.
type KeywordParser interface {
	// ParseKeywords never fails on malformed text: a page with no table
	// yields an empty Entries slice.
	ParseKeywords(text string) (*KeywordList, error)
}
