// Package excelize writes batch outcomes to an Excel workbook using
// github.com/xuri/excelize/v2.
package excelize

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/erank"
	"github.com/xuri/excelize/v2"
)

// Sheet names, one per source.
const (
	SheetListings  = "Listings"
	SheetAnalytics = "Analytics"
	SheetKeywords  = "Keywords"
)

// pasteColumn is the first column of every sheet.
const pasteColumn = "paste"

var keywordColumns = []string{
	pasteColumn,
	"seed_keyword",
	"country_code",
	"keyword",
	"avg_searches",
	"avg_clicks",
	"avg_ctr",
	"etsy_competition",
	"google_searches",
}

// WriteWorkbook writes one sheet per source to w. Each sheet starts with
// a header row. Failed and duplicate outcomes are left out. Analytics
// columns are the union of field names across outcomes, sorted.
func WriteWorkbook(w io.Writer, outcomes []pastescout.Outcome) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetListings)
	for _, sheet := range []string{SheetAnalytics, SheetKeywords} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	listingHeader := append([]any{pasteColumn}, anys(pastescout.ListingKeys)...)
	listings := [][]any{append(listingHeader, "path")}
	keywords := [][]any{anys(keywordColumns)}
	var analytics []pastescout.Outcome
	fieldKeys := map[string]struct{}{}

	for _, o := range outcomes {
		if o.Err != nil || o.DuplicateOf != "" {
			continue
		}
		switch {
		case o.Listing != nil:
			m := o.Listing.Map()
			row := []any{o.Name}
			for _, k := range pastescout.ListingKeys {
				row = append(row, m[k])
			}
			listings = append(listings, append(row, string(o.Listing.Path)))
		case o.Analytics != nil:
			analytics = append(analytics, o)
			for k := range o.Analytics.Fields {
				fieldKeys[k] = struct{}{}
			}
		case o.Keywords != nil:
			for _, e := range o.Keywords.Entries {
				keywords = append(keywords, []any{
					o.Name, o.Keywords.SeedKeyword, o.Keywords.CountryCode,
					e.Keyword, metricCell(e.AvgSearches), metricCell(e.AvgClicks), metricCell(e.AvgCTR),
					metricCell(e.EtsyCompetition), metricCell(e.GoogleSearches),
				})
			}
		}
	}

	if err := writeRows(f, SheetListings, listings); err != nil {
		return err
	}
	if err := writeRows(f, SheetAnalytics, analyticsRows(analytics, slices.Sorted(maps.Keys(fieldKeys)))); err != nil {
		return err
	}
	if err := writeRows(f, SheetKeywords, keywords); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func analyticsRows(outcomes []pastescout.Outcome, keys []string) [][]any {
	header := append([]any{pasteColumn}, anys(keys)...)
	rows := [][]any{append(header, "tags", "notes")}
	for _, o := range outcomes {
		row := []any{o.Name}
		for _, k := range keys {
			v, ok := o.Analytics.Fields.Get(k)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, cellValue(v))
		}
		names := make([]string, 0, len(o.Analytics.Tags))
		for _, t := range o.Analytics.Tags {
			names = append(names, t.Name)
		}
		rows = append(rows, append(row, strings.Join(names, ", "), o.Analytics.Notes))
	}
	return rows
}

// cellValue keeps numbers numeric in the sheet.
func cellValue(v pastescout.Value) any {
	switch v.Kind {
	case pastescout.KindInt:
		return v.Int
	case pastescout.KindFloat:
		return v.Float
	}
	return v.Str
}

// metricCell stores exact keyword metrics as numbers. Bounds such as
// "< 20" and markers such as "N/A" stay as displayed.
func metricCell(text string) any {
	if strings.Contains(text, "<") {
		return text
	}
	if f, ok := erank.MetricValue(text); ok {
		return f
	}
	return text
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

func anys(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
