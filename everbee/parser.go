// Package everbee extracts the best product record from text pasted from
// the Everbee product-analytics page.
package everbee

import (
	"cmp"
	"regexp"
	"strings"

	"github.com/fwojciec/pastescout"
)

// Ensure Parser implements pastescout.AnalyticsParser at compile time.
var _ pastescout.AnalyticsParser = (*Parser)(nil)

var trailingCount = regexp.MustCompile(`\s+\d+$`)

// trendsReach is how many lines after "Sales" the count may appear, and
// after the count the "Revenue" label.
const trendsReach = 3

// Parser reads pasted analytics text using a Profile.
type Parser struct {
	profile *Profile
}

// Option configures a Parser.
type Option func(*Parser)

// WithProfile replaces the default layout tables.
func WithProfile(p *Profile) Option {
	return func(parser *Parser) {
		if p != nil {
			parser.profile = p
		}
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{profile: DefaultProfile()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseAnalytics decodes every candidate record in text and returns the
// one with the highest monthly revenue, enriched with the trend, tag and
// detail sections. It returns ENOTFOUND when no candidate is found.
func (p *Parser) ParseAnalytics(text string) (*pastescout.Analytics, error) {
	lines := pastescout.SplitLines(text)
	if lines.Len() == 0 {
		return nil, pastescout.Errorf(pastescout.ENOTFOUND, "no content found in analytics text")
	}

	candidates := p.candidates(lines)
	sel, ok := pastescout.SelectBest(candidates, p.profile.RankKey)
	if !ok {
		return nil, pastescout.Errorf(pastescout.ENOTFOUND, "no product record found in analytics text")
	}

	fields := sel.Record.Fields.Clone()
	a := &pastescout.Analytics{
		Fields:        fields,
		Candidates:    len(candidates),
		LowConfidence: sel.LowConfidence,
	}

	p.applyTrends(lines, fields)
	a.Tags = p.tags(lines)
	a.Details = p.details(lines, fields)
	a.Notes = notes(a.Details)
	p.applyShopAge(ageLines(lines, sel.Record, len(candidates)), fields)

	return a, nil
}

// candidates decodes candidate records. Table rows found by signature win;
// otherwise repeated labeled blocks carrying the rank key; otherwise the
// whole table region is read as a single record.
func (p *Parser) candidates(lines pastescout.Lines) []pastescout.Record {
	prof := p.profile
	n := lines.Len()

	if starts := pastescout.FindSignatures(lines, pastescout.Region{End: n}, prof.Signature); len(starts) > 0 {
		var records []pastescout.Record
		for _, span := range pastescout.SignatureSpans(starts, n) {
			rec, ok := pastescout.DecodeSignature(lines, span, prof.Signature)
			if !ok {
				continue
			}
			pastescout.ScanLabels(lines, span.Start+len(prof.Signature), span.End, prof.Labels, rec.Fields, prof.Noise...)
			records = append(records, rec)
		}
		return records
	}

	table := prof.Table.Find(lines, 0)

	labeled := pastescout.DecodeLabeled(lines, pastescout.Region{Start: table.Start, End: n}, prof.Labels, []string{prof.RankKey})
	if len(labeled) > 1 {
		return labeled
	}

	rec := pastescout.Record{Fields: pastescout.Fields{}, Start: table.Start, End: n}
	consumed := p.guessTitleAndShop(lines, table.Start, rec.Fields)
	pastescout.ScanLabels(lines, table.Start+consumed, n, prof.Labels, rec.Fields, prof.Noise...)
	if len(rec.Fields) == 0 {
		return nil
	}
	return []pastescout.Record{rec}
}

// guessTitleAndShop stores the first lines of the table region as a
// provisional title and shop name when they look like names. Returns the
// number of lines used.
func (p *Parser) guessTitleAndShop(lines pastescout.Lines, start int, fields pastescout.Fields) int {
	title := lines.At(start)
	if !p.profile.nameCandidate(title) {
		return 0
	}
	fields.Set(pastescout.FieldTitle, pastescout.StringValue(title), pastescout.Provisional, false)

	shop := lines.At(start + 1)
	if !p.profile.nameCandidate(shop) || pastescout.ShapeAge.MatchString(shop) {
		return 1
	}
	fields.Set(pastescout.FieldShopName, pastescout.StringValue(shop), pastescout.Provisional, false)
	return 2
}

// applyTrends reads last-30-days sales from the trend panel: a "Sales"
// label, a count, and a "Revenue" label, each within a few lines of the
// previous.
func (p *Parser) applyTrends(lines pastescout.Lines, fields pastescout.Fields) {
	r := p.profile.Trends.Find(lines, 0)
	if !r.Found {
		return
	}

	for k := r.Start; k < r.End; k++ {
		if !strings.EqualFold(lines[k], "Sales") {
			continue
		}
		if v, ok := trendSales(lines, k, r.End); ok {
			fields.Set(pastescout.FieldLast30DaysSales, v, pastescout.Confirmed, false)
			return
		}
	}
}

func trendSales(lines pastescout.Lines, label, end int) (pastescout.Value, bool) {
	count := -1
	for i := label + 1; i < min(label+1+trendsReach, end); i++ {
		if pastescout.ShapeCount.MatchString(lines[i]) {
			count = i
			break
		}
		if strings.EqualFold(lines[i], "Revenue") {
			return pastescout.Value{}, false
		}
	}
	if count < 0 {
		return pastescout.Value{}, false
	}

	for i := count + 1; i < min(count+1+trendsReach, end); i++ {
		if strings.EqualFold(lines[i], "Revenue") {
			return pastescout.AsCount.Apply(lines[count])
		}
	}
	return pastescout.Value{}, false
}

// tags decodes the tag table.
func (p *Parser) tags(lines pastescout.Lines) []pastescout.Tag {
	r := p.profile.Tags.Find(lines, 0)
	if !r.Found {
		return nil
	}

	var tags []pastescout.Tag
	for _, rec := range pastescout.DecodeSequence(lines, r, p.profile.TagColumns) {
		volume, _ := rec.Fields.Number(TagVolume)
		competition, _ := rec.Fields.Number(TagCompetition)
		score, _ := rec.Fields.Number(TagScore)
		tags = append(tags, pastescout.Tag{
			Name:        rec.Fields.Text(TagName),
			Volume:      int(volume),
			Competition: int(competition),
			Level:       rec.Fields.Text(TagLevel),
			Score:       score,
		})
	}
	return tags
}

// details reads the "More Details" list. A key's value is every line up
// to the next known key; keys without a value are dropped. The listing
// type detail fills FieldListingType when the table did not supply it.
func (p *Parser) details(lines pastescout.Lines, fields pastescout.Fields) []pastescout.Detail {
	r := p.profile.Details.Find(lines, 0)
	if !r.Found {
		return nil
	}

	var details []pastescout.Detail
	var key string
	var values []string
	flush := func() {
		if key == "" || len(values) == 0 {
			return
		}
		value := strings.TrimSpace(strings.Join(values, " "))
		if strings.EqualFold(key, DetailWhoMade) {
			value = strings.TrimSpace(trailingCount.ReplaceAllString(value, ""))
		}
		value = cmp.Or(value, "Unknown")
		details = append(details, pastescout.Detail{Key: key, Value: value})
		if strings.EqualFold(key, DetailListingType) {
			p.fillListingType(fields, value)
		}
	}

	for i := r.Start; i < r.End; i++ {
		if k, ok := p.detailKey(lines[i]); ok {
			flush()
			key, values = k, nil
			continue
		}
		if key != "" {
			values = append(values, lines[i])
		}
	}
	flush()
	return details
}

func (p *Parser) detailKey(line string) (string, bool) {
	line = strings.TrimSpace(line)
	for _, k := range p.profile.DetailKeys {
		if strings.EqualFold(line, k) {
			return k, true
		}
	}
	return "", false
}

// fillListingType stores value as the listing type when none was read
// from the table and value has the listing type shape.
func (p *Parser) fillListingType(fields pastescout.Fields, value string) {
	if fields.Has(pastescout.FieldListingType) {
		return
	}
	spec, ok := p.profile.spec(pastescout.FieldListingType)
	if !ok {
		spec = pastescout.FieldSpec{Shape: shapeListingType, Key: pastescout.FieldListingType}
	}
	if v, ok := spec.ConvertValue(value); ok {
		fields.Set(pastescout.FieldListingType, v, pastescout.Confirmed, false)
	}
}

// ageLines returns the lines searched for a bare shop age: the selected
// record's own lines when several candidates were decoded, otherwise the
// whole page.
func ageLines(lines pastescout.Lines, rec pastescout.Record, candidates int) pastescout.Lines {
	if candidates > 1 {
		return lines.Slice(rec.Start, rec.End)
	}
	return lines
}

// applyShopAge guesses the shop age when no "Shop Age" label was read. The
// page shows listing age and shop age as bare "N Mo." tokens with no
// label, so the first such token that differs from the listing age is
// taken. The guess is stored as provisional because it depends only on
// occurrence order.
func (p *Parser) applyShopAge(lines pastescout.Lines, fields pastescout.Fields) {
	if fields.Has(pastescout.FieldShopAgeOverall) {
		return
	}

	listingAge := ""
	if fields.Has(pastescout.FieldListingAge) {
		listingAge = normalizeAge(fields.Text(pastescout.FieldListingAge))
	}

	for _, line := range lines {
		if !pastescout.ShapeAge.MatchString(line) {
			continue
		}
		if listingAge == "" || normalizeAge(line) != listingAge {
			fields.Set(pastescout.FieldShopAgeOverall, pastescout.StringValue(line), pastescout.Provisional, false)
			return
		}
	}
}

// normalizeAge folds "12 months" and "12 Mo." to the same form.
func normalizeAge(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "months", "mo")
	return strings.ReplaceAll(s, ".", "")
}

func notes(details []pastescout.Detail) string {
	if len(details) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("--- Everbee More Details ---")
	for _, d := range details {
		b.WriteString("\n- ")
		b.WriteString(d.Key)
		b.WriteString(": ")
		b.WriteString(d.Value)
	}
	return b.String()
}
