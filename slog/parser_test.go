package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/mock"
	psslog "github.com/fwojciec/pastescout/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingListingParser_ParseListing(t *testing.T) {
	t.Parallel()

	t.Run("logs path, bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ListingParser{
			ParseListingFn: func(markup string) (*pastescout.Listing, error) {
				return &pastescout.Listing{Title: "Mug", Path: pastescout.PathStructured}, nil
			},
		}

		parser := psslog.NewLoggingListingParser(inner, logger)
		l, err := parser.ParseListing("<html>mug</html>")

		require.NoError(t, err)
		assert.Equal(t, "Mug", l.Title)
		output := buf.String()
		assert.Contains(t, output, "parse listing")
		assert.Contains(t, output, "bytes=16")
		assert.Contains(t, output, "path=structured")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs each warning", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ListingParser{
			ParseListingFn: func(markup string) (*pastescout.Listing, error) {
				return &pastescout.Listing{Path: pastescout.PathMarkup, Warnings: []string{"structured data: bad"}}, nil
			},
		}

		_, err := psslog.NewLoggingListingParser(inner, logger).ParseListing("<html></html>")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "warning=\"structured data: bad\"")
		assert.Contains(t, output, "warnings=1")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.ListingParser{
			ParseListingFn: func(markup string) (*pastescout.Listing, error) {
				return nil, errors.New("unreadable markup")
			},
		}

		_, err := psslog.NewLoggingListingParser(inner, logger).ParseListing("x")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"unreadable markup\"")
	})
}

func TestLoggingAnalyticsParser_ParseAnalytics(t *testing.T) {
	t.Parallel()

	t.Run("logs candidates and confidence", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.AnalyticsParser{
			ParseAnalyticsFn: func(text string) (*pastescout.Analytics, error) {
				fields := pastescout.Fields{}
				fields.Set(pastescout.FieldMonthlyRevenue, pastescout.FloatValue(900), pastescout.Confirmed, false)
				return &pastescout.Analytics{Fields: fields, Candidates: 2}, nil
			},
		}

		a, err := psslog.NewLoggingAnalyticsParser(inner, logger).ParseAnalytics("Product")

		require.NoError(t, err)
		assert.Equal(t, 2, a.Candidates)
		output := buf.String()
		assert.Contains(t, output, "parse analytics")
		assert.Contains(t, output, "bytes=7")
		assert.Contains(t, output, "candidates=2")
		assert.Contains(t, output, "fields=1")
		assert.Contains(t, output, "low_confidence=false")
	})

	t.Run("logs not found error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.AnalyticsParser{
			ParseAnalyticsFn: func(text string) (*pastescout.Analytics, error) {
				return nil, errors.New("no product record")
			},
		}

		_, err := psslog.NewLoggingAnalyticsParser(inner, logger).ParseAnalytics("")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "err=\"no product record\"")
		assert.NotContains(t, output, "candidates=")
	})
}

func TestLoggingKeywordParser_ParseKeywords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.KeywordParser{
		ParseKeywordsFn: func(text string) (*pastescout.KeywordList, error) {
			return &pastescout.KeywordList{
				SeedKeyword: "mug",
				CountryCode: "US",
				Entries:     []pastescout.KeywordEntry{{Keyword: "mug"}, {Keyword: "cup"}},
			}, nil
		},
	}

	list, err := psslog.NewLoggingKeywordParser(inner, logger).ParseKeywords("text")

	require.NoError(t, err)
	assert.Len(t, list.Entries, 2)
	output := buf.String()
	assert.Contains(t, output, "parse keywords")
	assert.Contains(t, output, "seed=mug")
	assert.Contains(t, output, "country=US")
	assert.Contains(t, output, "entries=2")
}
