package pastescout_test

import (
	"testing"

	"github.com/fwojciec/pastescout"
	"github.com/stretchr/testify/assert"
)

func TestMarker_Match(t *testing.T) {
	t.Parallel()

	assert.True(t, pastescout.Exact("Tags").Match("  Tags "))
	assert.False(t, pastescout.Exact("Tags").Match("tags"))
	assert.True(t, pastescout.Fold("Tags").Match("TAGS"))
	assert.True(t, pastescout.Contains("Rows per page:").Match("Rows per page: 25"))
	assert.True(t, pastescout.Prefix("Search Trends (").Match("Search Trends (US)"))
	assert.False(t, pastescout.Prefix("Search Trends (").Match("Google Search Trends (US)"))
	assert.True(t, pastescout.Pattern(`^keyword score$`).Match("Keyword Score"))
	assert.False(t, pastescout.Marker{Kind: pastescout.MarkerPattern}.Match("anything"))
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	lines := pastescout.Lines{"a", "Tags", "b", "Tags"}
	tags := []pastescout.Marker{pastescout.Exact("Tags")}

	assert.Equal(t, 1, pastescout.IndexOf(lines, 0, lines.Len(), tags))
	assert.Equal(t, 3, pastescout.IndexOf(lines, 2, 99, tags))
	assert.Equal(t, -1, pastescout.IndexOf(lines, 0, 1, tags))
	assert.Equal(t, -1, pastescout.IndexOf(lines, 0, lines.Len(), nil))
}

func TestBoundary_Find(t *testing.T) {
	t.Parallel()

	table := pastescout.Boundary{
		Anchors:    []pastescout.Marker{pastescout.Contains("Export button")},
		Headers:    []pastescout.Marker{pastescout.Exact("Product")},
		Titles:     []pastescout.Marker{pastescout.Fold("Products")},
		SubHeaders: []pastescout.Marker{pastescout.Exact("Shop")},
		Ends:       []pastescout.Marker{pastescout.Fold("More Details")},
	}

	t.Run("prefers a header shortly after an anchor", func(t *testing.T) {
		t.Parallel()

		lines := pastescout.Lines{"Product", "intro", "Export button in Toolbar", "x", "Product", "Shop", "Linen Apron", "more details", "tail"}

		r := table.Find(lines, 0)

		assert.True(t, r.Found)
		assert.Equal(t, "anchor", r.Via)
		assert.Equal(t, 6, r.Start)
		assert.Equal(t, 7, r.End)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("falls back to a bare header", func(t *testing.T) {
		t.Parallel()

		lines := pastescout.Lines{"intro", "Product", "Linen Apron"}

		r := table.Find(lines, 0)

		assert.True(t, r.Found)
		assert.Equal(t, "header", r.Via)
		assert.Equal(t, 2, r.Start)
		assert.Equal(t, 3, r.End)
	})

	t.Run("falls back to a title", func(t *testing.T) {
		t.Parallel()

		lines := pastescout.Lines{"intro", "PRODUCTS", "Linen Apron"}

		r := table.Find(lines, 0)

		assert.Equal(t, "title", r.Via)
		assert.Equal(t, 2, r.Start)
	})

	t.Run("covers the remaining input when nothing matches", func(t *testing.T) {
		t.Parallel()

		lines := pastescout.Lines{"intro", "Linen Apron", "More Details", "Who Made"}

		r := table.Find(lines, 1)

		assert.False(t, r.Found)
		assert.Empty(t, r.Via)
		assert.Equal(t, 1, r.Start)
		assert.Equal(t, 2, r.End)
	})

	t.Run("applies offset and window", func(t *testing.T) {
		t.Parallel()

		b := pastescout.Boundary{
			Headers: []pastescout.Marker{pastescout.Exact("EXCLUDE KEYWORDS")},
			Offset:  1,
			Window:  3,
		}

		near := b.Find(pastescout.Lines{"a", "EXCLUDE KEYWORDS", "0/5", "mug"}, 0)
		far := b.Find(pastescout.Lines{"a", "b", "c", "EXCLUDE KEYWORDS", "0/5", "mug"}, 0)

		assert.True(t, near.Found)
		assert.Equal(t, 3, near.Start)
		assert.False(t, far.Found)
		assert.Equal(t, 0, far.Start)
	})
}
