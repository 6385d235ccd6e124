package pastescout

// Field names produced by analytics parsers.
const (
	FieldTitle           = "product_title"
	FieldShopName        = "shop_name"
	FieldPrice           = "price"
	FieldMonthlySales    = "monthly_sales"
	FieldMonthlyRevenue  = "monthly_revenue"
	FieldTotalSales      = "total_sales"
	FieldListingAge      = "listing_age"
	FieldReviews         = "reviews"
	FieldViews           = "views"
	FieldFavorites       = "favorites"
	FieldMonthlyReviews  = "monthly_reviews"
	FieldConversionRate  = "conversion_rate"
	FieldCategory        = "category"
	FieldVisibilityScore = "visibility_score"
	FieldReviewRatio     = "review_ratio"
	FieldShopAgeOverall  = "shop_age_overall"
	FieldTotalShopSales  = "total_shop_sales"
	FieldListingType     = "listing_type"
	FieldLast30DaysSales = "last_30_days_sales"
)

// Tag is one row of the analytics tag table.
type Tag struct {
	Name        string  `json:"name"`
	Volume      int     `json:"volume"`
	Competition int     `json:"competition"`
	Level       string  `json:"level"`
	Score       float64 `json:"score"`
}

// Detail is one key/value pair from the "More Details" section.
type Detail struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Analytics is the single best record extracted from a pasted
// product-analytics page.
type Analytics struct {
	Fields  Fields   `json:"fields"`
	Tags    []Tag    `json:"tags,omitempty"`
	Details []Detail `json:"details,omitempty"`

	// Notes is a human-readable digest of Details.
	Notes string `json:"notes,omitempty"`

	// Candidates is how many candidate records were decoded before the
	// best one was selected.
	Candidates int `json:"candidates"`

	// LowConfidence is set when no candidate carried a ranking value and
	// the first candidate was kept.
	LowConfidence bool `json:"low_confidence"`
}

// AnalyticsParser extracts the best product record from pasted analytics
// text.
type AnalyticsParser interface {
	// ParseAnalytics returns ENOTFOUND when the text holds no content or
	// no candidate record. Callers should ask for a fresh paste.
	ParseAnalytics(text string) (*Analytics, error)
}
