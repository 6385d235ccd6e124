package everbee

import (
	"regexp"

	"github.com/fwojciec/pastescout"
)

// Profile holds the marker and field tables that describe one layout of
// the analytics page. Layout drift is handled by editing a Profile rather
// than the parser.
type Profile struct {
	// Table locates the product table.
	Table pastescout.Boundary

	// Labels are the label/value pairs read inside a candidate record.
	Labels []pastescout.FieldSpec

	// Noise lines are skipped while scanning labels.
	Noise []pastescout.Marker

	// Signature is the positional run of lines that opens a table row.
	Signature []pastescout.Column

	// RankKey is the numeric field used to pick the best candidate.
	RankKey string

	// Trends locates the trend panel holding last-30-days sales.
	Trends pastescout.Boundary

	// Tags locates the tag table, decoded with TagColumns.
	Tags       pastescout.Boundary
	TagColumns []pastescout.Column

	// Details locates the "More Details" key/value list and DetailKeys
	// names its keys.
	Details    pastescout.Boundary
	DetailKeys []string
}

// Tag column keys.
const (
	TagName        = "name"
	TagVolume      = "volume"
	TagCompetition = "competition"
	TagLevel       = "level"
	TagScore       = "score"
)

// Detail keys with special handling.
const (
	DetailWhoMade     = "Who Made"
	DetailListingType = "Listing Type"
)

var (
	// nameLike matches lines that could be a product title or shop name.
	nameLike = regexp.MustCompile(`[A-Za-z]`)
	// numericLead rejects lines that start like a price or count.
	numericLead = regexp.MustCompile(`^[$£€\d]`)

	shapeVisibility  = regexp.MustCompile(`^\d+%?$`)
	shapeListingType = regexp.MustCompile(`(?i)^(Physical|Digital)$`)
)

// DefaultProfile returns the tables for the current analytics layout.
// Each call returns a fresh value that the caller may modify.
func DefaultProfile() *Profile {
	na := pastescout.StringValue("N/A")

	return &Profile{
		Table: pastescout.Boundary{
			Anchors: []pastescout.Marker{
				pastescout.Contains("Customize button in Toolbar"),
				pastescout.Contains("Filter button in Toolbar"),
				pastescout.Contains("Export button in Toolbar"),
			},
			Headers: []pastescout.Marker{pastescout.Exact("Product")},
			SubHeaders: []pastescout.Marker{
				pastescout.Exact("Product/Shop Image"),
				pastescout.Exact("Dots Svg"),
			},
			Ends: []pastescout.Marker{
				pastescout.Pattern(`^Showing: \d+ of \d+$`),
				pastescout.Pattern(`^Listing Details$`),
				pastescout.Pattern(`^Tags$`),
				pastescout.Pattern(`^Related Searches$`),
				pastescout.Pattern(`^Keyword Score$`),
				pastescout.Pattern(`^Trends$`),
			},
			Window: 60,
		},

		Labels: []pastescout.FieldSpec{
			{Label: "Price", Shape: pastescout.ShapeCurrency, Key: pastescout.FieldPrice, Convert: pastescout.AsCurrency},
			{Label: "Shop", Shape: pastescout.ShapeAny, Key: pastescout.FieldShopName},
			{Label: "Mo. Sales", Shape: pastescout.ShapeCount, Key: pastescout.FieldMonthlySales, Convert: pastescout.AsCount},
			{Label: "Mo. Revenue", Shape: pastescout.ShapeCurrency, Key: pastescout.FieldMonthlyRevenue, Convert: pastescout.AsCurrency},
			{Label: "Total Sales", Shape: pastescout.ShapeCount, Key: pastescout.FieldTotalSales, Convert: pastescout.AsCount},
			{Label: "Listing Age", Shape: pastescout.ShapeAge, Key: pastescout.FieldListingAge},
			{Label: "Reviews", Shape: pastescout.ShapeCount, Key: pastescout.FieldReviews, Convert: pastescout.AsCount},
			{Label: "Views", Shape: pastescout.ShapeCount, Key: pastescout.FieldViews, Convert: pastescout.AsCount},
			{Label: "Favorites", Shape: pastescout.ShapeCount, Key: pastescout.FieldFavorites, Convert: pastescout.AsCount},
			{Label: "Mo. Reviews", Shape: pastescout.ShapeCount, Key: pastescout.FieldMonthlyReviews, Convert: pastescout.AsCount, Overwrite: true},
			{Label: "Conversion Rate", Shape: pastescout.ShapePercent, Key: pastescout.FieldConversionRate, Convert: pastescout.AsPercent},
			{Label: "Category", Shape: pastescout.ShapeAny, Key: pastescout.FieldCategory},
			{Label: "Visibility Score", Shape: shapeVisibility, Key: pastescout.FieldVisibilityScore, Convert: pastescout.AsPercent},
			{Label: "Review Ratio", Shape: pastescout.ShapePercent, Key: pastescout.FieldReviewRatio, Convert: pastescout.AsPercent},
			{Label: "Shop Age", Shape: pastescout.ShapeAge, Key: pastescout.FieldShopAgeOverall},
			{Label: "Total Shop Sales", Shape: pastescout.ShapeCount, Key: pastescout.FieldTotalShopSales, Convert: pastescout.AsCount},
			{Label: "Listing Type", Shape: shapeListingType, Key: pastescout.FieldListingType},
			{Label: "Avg. Reviews", Shape: pastescout.ShapeCount, Key: pastescout.FieldMonthlyReviews, Convert: pastescout.AsCount, Overwrite: true},
		},

		Noise: []pastescout.Marker{pastescout.Exact("Dots Svg")},

		Signature: []pastescout.Column{
			{Key: pastescout.FieldTitle, Shape: nameLike, Exclude: []*regexp.Regexp{numericLead}, Provisional: true},
			{Key: pastescout.FieldShopName, Shape: nameLike, Exclude: []*regexp.Regexp{numericLead, pastescout.ShapeAge}, Provisional: true},
			{Key: pastescout.FieldPrice, Shape: pastescout.ShapeCurrency, Convert: pastescout.AsCurrency},
			{Key: pastescout.FieldMonthlySales, Shape: pastescout.ShapeCount, Convert: pastescout.AsCount},
			{Key: pastescout.FieldMonthlyRevenue, Shape: pastescout.ShapeCurrency, Convert: pastescout.AsCurrency},
		},

		RankKey: pastescout.FieldMonthlyRevenue,

		Trends: pastescout.Boundary{
			Titles: []pastescout.Marker{pastescout.Fold("Trends")},
			Ends: []pastescout.Marker{
				pastescout.Fold("Tags"),
				pastescout.Fold("More Details"),
				pastescout.Fold("Related Searches"),
				pastescout.Fold("Listing Details"),
			},
		},

		Tags: pastescout.Boundary{
			Headers:    []pastescout.Marker{pastescout.Pattern(`^Keyword Score$`)},
			Titles:     []pastescout.Marker{pastescout.Pattern(`^Tags$`)},
			SubHeaders: []pastescout.Marker{pastescout.Pattern(`^(Volume|Competition|Keyword Score)\s*$`)},
			Ends:       []pastescout.Marker{pastescout.Pattern(`^\s*More Details\s*$`)},
		},
		TagColumns: []pastescout.Column{
			{
				Key:   TagName,
				Shape: nameLike,
				Exclude: []*regexp.Regexp{
					regexp.MustCompile(`^[\d,.\s%]+$`),
					pastescout.ShapeLevel,
				},
			},
			{Key: TagVolume, Shape: pastescout.ShapeCount, Convert: pastescout.AsCount},
			{Key: TagCompetition, Shape: pastescout.ShapeCount, Convert: pastescout.AsCount},
			{Key: TagLevel, Shape: pastescout.ShapeLevel, Optional: true, Default: &na},
			{Key: TagScore, Shape: pastescout.ShapeDecimal, Convert: pastescout.AsDecimal},
		},

		Details: pastescout.Boundary{
			Headers: []pastescout.Marker{pastescout.Pattern(`^\s*More Details\s*$`)},
		},
		DetailKeys: []string{
			"When Made",
			DetailListingType,
			"Customizable",
			"Craft Supply",
			"Personalized",
			"Auto Renew",
			"Has variations",
			"Placements of Listing Shops",
			"Title character count",
			"# of tags",
			DetailWhoMade,
		},
	}
}

// spec returns the label spec stored under key.
func (p *Profile) spec(key string) (pastescout.FieldSpec, bool) {
	for _, s := range p.Labels {
		if s.Key == key {
			return s, true
		}
	}
	return pastescout.FieldSpec{}, false
}

// isLabel reports whether line is one of the profile's labels.
func (p *Profile) isLabel(line string) bool {
	_, ok := pastescout.MatchSpec(line, p.Labels)
	return ok
}

// nameCandidate reports whether line may be a positional title or shop
// name.
func (p *Profile) nameCandidate(line string) bool {
	return line != "" &&
		nameLike.MatchString(line) &&
		!numericLead.MatchString(line) &&
		!pastescout.MatchAny(line, p.Table.SubHeaders) &&
		!p.isLabel(line)
}
