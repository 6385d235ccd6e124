package pastescout_test

import (
	"testing"

	"github.com/fwojciec/pastescout"
	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	t.Parallel()

	t.Run("trims lines and drops blanks", func(t *testing.T) {
		t.Parallel()

		got := pastescout.SplitLines("  Product \r\n\r\n\tMug\rPrice\n\n")

		assert.Equal(t, pastescout.Lines{"Product", "Mug", "Price"}, got)
	})

	t.Run("restores escaped line breaks", func(t *testing.T) {
		t.Parallel()

		got := pastescout.SplitLines(`Mo. Sales\n120\r\nMo. Revenue`)

		assert.Equal(t, pastescout.Lines{"Mo. Sales", "120", "Mo. Revenue"}, got)
	})

	t.Run("folds non-breaking spaces and full-width digits", func(t *testing.T) {
		t.Parallel()

		got := pastescout.SplitLines("12\u00a0Mo.\n\uff11\uff12\uff13")

		assert.Equal(t, pastescout.Lines{"12 Mo.", "123"}, got)
	})

	t.Run("keeps symbols and ligatures as written", func(t *testing.T) {
		t.Parallel()

		got := pastescout.SplitLines("Mug\u2122 \u00bd Pint \ufb01ne\nKeywords related to \"mug\u2122\"")

		assert.Equal(t, pastescout.Lines{"Mug\u2122 \u00bd Pint \ufb01ne", "Keywords related to \"mug\u2122\""}, got)
	})

	t.Run("returns nil for empty input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, pastescout.SplitLines(""))
		assert.Nil(t, pastescout.SplitLines(" \n \n"))
	})
}

func TestLines_Access(t *testing.T) {
	t.Parallel()

	lines := pastescout.Lines{"a", "b", "c"}

	assert.Equal(t, 3, lines.Len())
	assert.Equal(t, "b", lines.At(1))
	assert.Empty(t, lines.At(-1))
	assert.Empty(t, lines.At(3))
	assert.Equal(t, pastescout.Lines{"b", "c"}, lines.Slice(1, 10))
	assert.Equal(t, pastescout.Lines{"a"}, lines.Slice(-2, 1))
	assert.Nil(t, lines.Slice(2, 1))
}
