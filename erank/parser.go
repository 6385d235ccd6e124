// Package erank extracts keyword rows from text pasted from the eRank
// keyword tool.
package erank

import (
	"regexp"
	"strings"

	"github.com/fwojciec/pastescout"
)

// Ensure Parser implements pastescout.KeywordParser at compile time.
var _ pastescout.KeywordParser = (*Parser)(nil)

const (
	seedPrefix    = "Keywords related to"
	countryPrefix = "Search Trends ("

	// seedQuoteReach is how far past the seed prefix the opening quote may
	// appear.
	seedQuoteReach = 5

	// Country lookup limits, in lines after the seed line or from the top
	// when there is no seed line.
	countryReachAfterSeed = 30
	countryReachNoSeed    = 50
)

// Chunk column keys.
const (
	colKeyword     = "keyword"
	colSearches    = "avg_searches"
	colClicks      = "avg_clicks"
	colCTR         = "avg_ctr"
	colCompetition = "etsy_competition"
	colGoogle      = "google_searches"
)

// quotes pairs each accepted opening quote with its closing quote.
var quotes = []struct{ open, close string }{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
}

var (
	parenthesized = regexp.MustCompile(`\((.*?)\)`)

	// table is bounded by the exclude-keywords control, whose counter line
	// is skipped, and the pager or page footer.
	table = pastescout.Boundary{
		Headers: []pastescout.Marker{pastescout.Exact("EXCLUDE KEYWORDS")},
		Ends: []pastescout.Marker{
			pastescout.Contains("Rows per page:"),
			pastescout.Contains("Copyright ©"),
		},
		Offset: 1,
	}

	// chunk is the nine-line keyword row: keyword, date, trend, character
	// and tag counts, then five metrics.
	chunk = []pastescout.Column{
		{Key: colKeyword, Shape: regexp.MustCompile(`[A-Za-z]`), Exclude: []*regexp.Regexp{regexp.MustCompile(`^[\d\s]+$`)}},
		{},
		{},
		{Shape: regexp.MustCompile(`^\d+\s+\d+$`)},
		{Key: colSearches},
		{Key: colClicks},
		{Key: colCTR},
		{Key: colCompetition},
		{Key: colGoogle, Shape: regexp.MustCompile(`(?i)^([\d,]+|N/A|Unknown)$`)},
	}
)

// Parser reads pasted keyword tool text.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseKeywords extracts the seed keyword, the country code and every
// well-formed keyword row. Malformed rows are skipped.
func (p *Parser) ParseKeywords(text string) (*pastescout.KeywordList, error) {
	lines := pastescout.SplitLines(text)

	seed, seedLine := seedKeyword(lines)
	list := &pastescout.KeywordList{
		SeedKeyword: seed,
		CountryCode: countryCode(lines, seedLine),
		Entries:     []pastescout.KeywordEntry{},
	}

	r := table.Find(lines, seedLine+1)
	if !r.Found {
		return list, nil
	}

	for _, rec := range pastescout.DecodeStride(lines, r, chunk) {
		list.Entries = append(list.Entries, pastescout.KeywordEntry{
			Keyword:         rec.Fields.Text(colKeyword),
			AvgSearches:     rec.Fields.Text(colSearches),
			AvgClicks:       rec.Fields.Text(colClicks),
			AvgCTR:          rec.Fields.Text(colCTR),
			EtsyCompetition: rec.Fields.Text(colCompetition),
			GoogleSearches:  rec.Fields.Text(colGoogle),
		})
	}
	return list, nil
}

// seedKeyword returns the quoted keyword from the first usable seed line
// and that line's index, or -1 when there is none.
func seedKeyword(lines pastescout.Lines) (string, int) {
	for i, line := range lines {
		if !strings.HasPrefix(line, seedPrefix) {
			continue
		}
		if kw, ok := quoted(line, len(seedPrefix)); ok {
			return kw, i
		}
	}
	return "", -1
}

// quoted returns the trimmed text between the first opening quote at or
// after from and its closing quote. A missing matching quote falls back to
// the nearest closing quote of any kind.
func quoted(line string, from int) (string, bool) {
	open, width, closeQuote := -1, 0, ""
	for _, q := range quotes {
		idx := strings.Index(line[from:], q.open)
		if idx < 0 {
			continue
		}
		idx += from
		if open < 0 || idx < open {
			open, width, closeQuote = idx, len(q.open), q.close
		}
	}
	if open < 0 || open > from+seedQuoteReach {
		return "", false
	}

	rest := line[open+width:]
	end := strings.Index(rest, closeQuote)
	if end < 0 {
		for _, q := range quotes {
			if idx := strings.Index(rest, q.close); idx >= 0 && (end < 0 || idx < end) {
				end = idx
			}
		}
	}
	if end < 0 {
		return "", false
	}

	kw := strings.TrimSpace(rest[:end])
	return kw, kw != ""
}

// countryCode reads the parenthesized code from the search trends heading
// near the seed line.
func countryCode(lines pastescout.Lines, seedLine int) string {
	limit := countryReachNoSeed
	if seedLine >= 0 {
		limit = seedLine + countryReachAfterSeed
	}

	for i := 0; i < lines.Len() && i <= limit; i++ {
		if !strings.HasPrefix(lines[i], countryPrefix) {
			continue
		}
		m := parenthesized.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		if code := strings.TrimSpace(m[1]); code != "" {
			return code
		}
	}
	return pastescout.UnknownCountry
}
