package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/pastescout"
	main "github.com/fwojciec/pastescout/cmd/pastescout"
	"github.com/fwojciec/pastescout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("detects sources and prints outcomes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := filepath.Join(dir, "apron.html")
		text := filepath.Join(dir, "apron.txt")
		require.NoError(t, os.WriteFile(page, []byte("<html></html>"), 0o644))
		require.NoError(t, os.WriteFile(text, []byte("Product\nMo. Revenue"), 0o644))

		var got []pastescout.Paste
		runner := &mock.BatchRunner{
			RunFn: func(_ context.Context, pastes []pastescout.Paste, progress pastescout.ProgressFunc) (*pastescout.BatchResult, error) {
				got = pastes
				progress(pastescout.ProgressEvent{Type: pastescout.ProgressStarted, Total: len(pastes)})
				return &pastescout.BatchResult{
					Outcomes: []pastescout.Outcome{
						{Name: page, Source: pastescout.SourceListing, Listing: &pastescout.Listing{Title: "Linen Apron", Path: pastescout.PathMarkup}},
						{Name: text, Source: pastescout.SourceAnalytics, Err: pastescout.Errorf(pastescout.ENOTFOUND, "no product record found in analytics text")},
					},
					Parsed: 1,
					Failed: 1,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runner: runner,
		}

		err := (&main.BatchCmd{Files: []string{page, text}, Source: "auto"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 pastes failed")
		require.Len(t, got, 2)
		assert.Equal(t, pastescout.SourceListing, got[0].Source)
		assert.Equal(t, pastescout.SourceAnalytics, got[1].Source)
		assert.Equal(t, "<html></html>", got[0].Content)

		out := stdout.String()
		assert.Contains(t, out, "product_title: Linen Apron")
		assert.Contains(t, out, "error: no product record found in analytics text")
		assert.Contains(t, stderr.String(), "Parsing 2 pastes")
		assert.Contains(t, stderr.String(), "Parsed 1, failed 1, duplicates 0")
	})

	t.Run("applies the source flag to every file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))

		var got []pastescout.Paste
		runner := &mock.BatchRunner{
			RunFn: func(_ context.Context, pastes []pastescout.Paste, _ pastescout.ProgressFunc) (*pastescout.BatchResult, error) {
				got = pastes
				return &pastescout.BatchResult{Outcomes: []pastescout.Outcome{{Name: path, Source: pastescout.SourceKeywords, Keywords: &pastescout.KeywordList{CountryCode: "US"}}}, Parsed: 1}, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Runner: runner,
		}

		err := (&main.BatchCmd{Files: []string{path}, Source: "keywords"}).Run(deps)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, pastescout.SourceKeywords, got[0].Source)
	})

	t.Run("includes error messages in JSON output", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("1234"), 0o644))

		runner := &mock.BatchRunner{
			RunFn: func(_ context.Context, pastes []pastescout.Paste, _ pastescout.ProgressFunc) (*pastescout.BatchResult, error) {
				return &pastescout.BatchResult{
					Outcomes: []pastescout.Outcome{{
						Name:   path,
						Source: pastescout.SourceAnalytics,
						Hash:   "abc",
						Err:    pastescout.Errorf(pastescout.ENOTFOUND, "no product record found in analytics text"),
					}},
					Failed: 1,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Format: main.FormatJSON,
			Runner: runner,
		}

		err := (&main.BatchCmd{Files: []string{path}, Source: "auto"}).Run(deps)

		require.Error(t, err)
		var got []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, path, got[0]["name"])
		assert.Equal(t, "analytics", got[0]["source"])
		assert.Equal(t, "abc", got[0]["hash"])
		assert.Equal(t, "no product record found in analytics text", got[0]["error"])
	})

	t.Run("writes an Excel workbook", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := filepath.Join(dir, "apron.html")
		out := filepath.Join(dir, "out.xlsx")
		require.NoError(t, os.WriteFile(page, []byte("<html></html>"), 0o644))

		runner := &mock.BatchRunner{
			RunFn: func(_ context.Context, pastes []pastescout.Paste, _ pastescout.ProgressFunc) (*pastescout.BatchResult, error) {
				return &pastescout.BatchResult{
					Outcomes: []pastescout.Outcome{{Name: page, Source: pastescout.SourceListing, Listing: &pastescout.Listing{Title: "Linen Apron"}}},
					Parsed:   1,
				}, nil
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runner: runner,
		}

		err := (&main.BatchCmd{Files: []string{page}, Source: "auto", XLSX: out}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Wrote "+out)

		f, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Listings")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Linen Apron", rows[1][2])
	})

	t.Run("returns runner errors", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))

		runner := &mock.BatchRunner{
			RunFn: func(context.Context, []pastescout.Paste, pastescout.ProgressFunc) (*pastescout.BatchResult, error) {
				return nil, context.Canceled
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runner: runner,
		}

		err := (&main.BatchCmd{Files: []string{path}}).Run(deps)

		require.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestDetectSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    pastescout.Source
	}{
		{"html extension", "apron.HTML", "plain text", pastescout.SourceListing},
		{"markup content", "paste.txt", "  <!DOCTYPE html><html>", pastescout.SourceListing},
		{"keyword table header", "paste.txt", "Keyword Tool\nEXCLUDE KEYWORDS\n", pastescout.SourceKeywords},
		{"seed keyword line", "paste.txt", `Keywords related to "mug"`, pastescout.SourceKeywords},
		{"anything else", "paste.txt", "Product\nMo. Revenue\n$4,480", pastescout.SourceAnalytics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, main.DetectSource(tt.file, tt.content))
		})
	}
}
