package erank_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/erank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paste(lines ...string) string {
	return strings.Join(lines, "\n")
}

var (
	header = []string{
		"Keyword Tool",
		`Keywords related to "ceramic mug"`,
		"Search Trends (US)",
		"EXCLUDE KEYWORDS",
		"0/5",
	}

	mugRow = []string{
		"ceramic mug", "Apr 2024", "Trending", "11\t18",
		"12,400", "9,800", "79%", "54,000", "33,100",
	}
	handmadeRow = []string{
		"handmade mug", "Apr 2024", "Stable", "12\t22",
		"< 20", "< 20", "N/A", "8,200", "N/A",
	}
	giftRow = []string{
		"coffee mug gift", "Apr 2024", "Rising", "15\t9",
		"1,050", "870", "83%", "120,500", "Unknown",
	}
	footer = []string{"Rows per page: 25", "1-3 of 3"}
)

func page(parts ...[]string) string {
	var lines []string
	for _, p := range parts {
		lines = append(lines, p...)
	}
	return paste(lines...)
}

func TestParser_ParseKeywords(t *testing.T) {
	t.Parallel()

	t.Run("decodes consecutive rows in order", func(t *testing.T) {
		t.Parallel()

		list, err := erank.NewParser().ParseKeywords(page(header, mugRow, handmadeRow, giftRow, footer))

		require.NoError(t, err)
		require.Len(t, list.Entries, 3)
		assert.Equal(t, pastescout.KeywordEntry{
			Keyword:         "ceramic mug",
			AvgSearches:     "12,400",
			AvgClicks:       "9,800",
			AvgCTR:          "79%",
			EtsyCompetition: "54,000",
			GoogleSearches:  "33,100",
		}, list.Entries[0])
		assert.Equal(t, "handmade mug", list.Entries[1].Keyword)
		assert.Equal(t, "< 20", list.Entries[1].AvgSearches)
		assert.Equal(t, "coffee mug gift", list.Entries[2].Keyword)
		assert.Equal(t, "Unknown", list.Entries[2].GoogleSearches)
	})

	t.Run("skips a corrupted row without merging neighbours", func(t *testing.T) {
		t.Parallel()

		corrupted := append([]string(nil), handmadeRow...)
		corrupted[3] = "twelve"

		list, err := erank.NewParser().ParseKeywords(page(header, mugRow, corrupted, giftRow, footer))

		require.NoError(t, err)
		require.Len(t, list.Entries, 2)
		assert.Equal(t, "ceramic mug", list.Entries[0].Keyword)
		assert.Equal(t, "coffee mug gift", list.Entries[1].Keyword)
	})

	t.Run("stops at the page footer", func(t *testing.T) {
		t.Parallel()

		list, err := erank.NewParser().ParseKeywords(page(header, mugRow, []string{"Copyright © 2024 eRank"}, giftRow))

		require.NoError(t, err)
		require.Len(t, list.Entries, 1)
		assert.Equal(t, "ceramic mug", list.Entries[0].Keyword)
	})

	t.Run("ignores a trailing partial row", func(t *testing.T) {
		t.Parallel()

		list, err := erank.NewParser().ParseKeywords(page(header, mugRow, giftRow[:5]))

		require.NoError(t, err)
		assert.Len(t, list.Entries, 1)
	})

	t.Run("reads seed keyword and country code", func(t *testing.T) {
		t.Parallel()

		list, err := erank.NewParser().ParseKeywords(page(header, mugRow))

		require.NoError(t, err)
		assert.Equal(t, "ceramic mug", list.SeedKeyword)
		assert.Equal(t, "US", list.CountryCode)
	})

	t.Run("returns empty entries without the table marker", func(t *testing.T) {
		t.Parallel()

		list, err := erank.NewParser().ParseKeywords(page(header[:3], mugRow))

		require.NoError(t, err)
		assert.Equal(t, "ceramic mug", list.SeedKeyword)
		assert.Equal(t, "US", list.CountryCode)
		assert.NotNil(t, list.Entries)
		assert.Empty(t, list.Entries)
	})

	t.Run("defaults country and seed for unrelated text", func(t *testing.T) {
		t.Parallel()

		list, err := erank.NewParser().ParseKeywords("nothing to see")

		require.NoError(t, err)
		assert.Empty(t, list.SeedKeyword)
		assert.Equal(t, pastescout.UnknownCountry, list.CountryCode)
		assert.Empty(t, list.Entries)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		text := page(header, mugRow, handmadeRow, footer)
		p := erank.NewParser()

		first, err := p.ParseKeywords(text)
		require.NoError(t, err)
		second, err := p.ParseKeywords(text)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestParser_SeedKeyword(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		line string
		want string
	}{
		{"double quotes", `Keywords related to "ceramic mug"`, "ceramic mug"},
		{"single quotes", `Keywords related to 'linen apron'`, "linen apron"},
		{"curly quotes", "Keywords related to “wall art”", "wall art"},
		{"surrounding spaces", `Keywords related to "  boho decor "`, "boho decor"},
		{"mismatched closing quote", `Keywords related to "gift box'`, "gift box"},
		{"quote too far from prefix", `Keywords related to the term "mug"`, ""},
		{"no closing quote", `Keywords related to "mug`, ""},
		{"empty quotes", `Keywords related to ""`, ""},
		{"symbols kept as written", "Keywords related to \"mug\u2122\"", "mug\u2122"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			list, err := erank.NewParser().ParseKeywords(tc.line)

			require.NoError(t, err)
			assert.Equal(t, tc.want, list.SeedKeyword)
		})
	}
}

func TestParser_CountryCode(t *testing.T) {
	t.Parallel()

	t.Run("searches a limited window after the seed line", func(t *testing.T) {
		t.Parallel()

		lines := []string{`Keywords related to "mug"`}
		for range 31 {
			lines = append(lines, "filler")
		}
		lines = append(lines, "Search Trends (GB)")

		list, err := erank.NewParser().ParseKeywords(paste(lines...))

		require.NoError(t, err)
		assert.Equal(t, pastescout.UnknownCountry, list.CountryCode)
	})

	t.Run("reads code within the window", func(t *testing.T) {
		t.Parallel()

		list, err := erank.NewParser().ParseKeywords(paste(`Keywords related to "mug"`, "filler", "Search Trends ( GB )"))

		require.NoError(t, err)
		assert.Equal(t, "GB", list.CountryCode)
	})
}

func TestMetricValue(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1,234", 1234, true},
		{"87%", 87, true},
		{"< 20", 19.99, true},
		{"<5", 4.99, true},
		{"<", 1, true},
		{"N/A", 0, false},
		{"Unknown", 0, false},
		{"", 0, false},
		{"lots", 0, false},
	} {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()

			got, ok := erank.MetricValue(tc.in)

			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
