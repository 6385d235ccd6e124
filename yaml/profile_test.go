package yaml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/everbee"
	"github.com/fwojciec/pastescout/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	t.Run("round-trips the default profile", func(t *testing.T) {
		t.Parallel()

		want, err := yaml.MarshalProfile(everbee.DefaultProfile())
		require.NoError(t, err)

		loaded, err := yaml.LoadProfile(bytes.NewReader(want))
		require.NoError(t, err)
		got, err := yaml.MarshalProfile(loaded)
		require.NoError(t, err)

		assert.Equal(t, string(want), string(got))
	})

	t.Run("returns the default profile for an empty document", func(t *testing.T) {
		t.Parallel()

		p, err := yaml.LoadProfile(strings.NewReader(""))

		require.NoError(t, err)
		def := everbee.DefaultProfile()
		assert.Equal(t, def.RankKey, p.RankKey)
		assert.Len(t, p.Labels, len(def.Labels))
		assert.Equal(t, def.DetailKeys, p.DetailKeys)
	})

	t.Run("replaces labels and keeps other sections", func(t *testing.T) {
		t.Parallel()

		doc := `
labels:
  - label: Monthly Revenue
    key: monthly_revenue
    shape: '^[$£€][\d,.]+$'
    convert: currency
  - label: Shop Name
    key: shop_name
`
		p, err := yaml.LoadProfile(strings.NewReader(doc))

		require.NoError(t, err)
		require.Len(t, p.Labels, 2)
		assert.Equal(t, "Monthly Revenue", p.Labels[0].Label)
		assert.Equal(t, pastescout.AsCurrency, p.Labels[0].Convert)
		assert.Nil(t, p.Labels[1].Shape)
		assert.Equal(t, 60, p.Table.Window)
	})

	t.Run("drives the analytics parser", func(t *testing.T) {
		t.Parallel()

		doc := `
table:
  headers:
    - exact: Listing
labels:
  - label: Monthly Revenue
    key: monthly_revenue
    shape: '^[$£€][\d,.]+$'
    convert: currency
`
		p, err := yaml.LoadProfile(strings.NewReader(doc))
		require.NoError(t, err)

		a, err := everbee.NewParser(everbee.WithProfile(p)).ParseAnalytics("Listing\nMonthly Revenue\n$1,200.00")

		require.NoError(t, err)
		v, ok := a.Fields.Number(pastescout.FieldMonthlyRevenue)
		require.True(t, ok)
		assert.InDelta(t, 1200.0, v, 1e-9)
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		t.Parallel()

		for name, doc := range map[string]string{
			"unknown field":     "colour: blue\n",
			"bad shape":         "labels:\n  - label: Price\n    key: price\n    shape: '['\n",
			"unknown converter": "labels:\n  - label: Price\n    key: price\n    convert: roman\n",
			"missing key":       "labels:\n  - label: Price\n",
			"two marker kinds":  "noise:\n  - exact: a\n    fold: b\n",
			"empty marker":      "table:\n  ends:\n    - {}\n",
			"bad pattern":       "table:\n  ends:\n    - pattern: '('\n",
			"malformed yaml":    "labels: [\n",
		} {
			_, err := yaml.LoadProfile(strings.NewReader(doc))
			assert.Equal(t, pastescout.EINVALID, pastescout.ErrorCode(err), name)
		}
	})
}
