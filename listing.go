package pastescout

// ExtractionPath records which path supplied a listing's core fields.
type ExtractionPath string

// Extraction paths.
const (
	// PathStructured means every core field came from the embedded
	// machine-readable product record.
	PathStructured ExtractionPath = "structured"

	// PathMarkup means no usable embedded record was found and every
	// field came from markup probes.
	PathMarkup ExtractionPath = "markup"

	// PathMixed means the embedded record was used but markup probes
	// filled at least one core field it lacked.
	PathMixed ExtractionPath = "mixed"
)

// Listing holds the fields extracted from a pasted product listing page.
// Every field is a string; a field that could not be found is empty.
//
// Price is the offer price as written in the structured record. When it is
// read from the buy box instead, it and ShippingCost use the shortest
// decimal form with one fractional digit at least: "12.5", "1250.0", and
// "0.0" for free delivery.
type Listing struct {
	URL            string `json:"product_url"`
	Title          string `json:"product_title"`
	Price          string `json:"price_str"`
	ShopName       string `json:"shop_name"`
	ShopURL        string `json:"shop_url"`
	Description    string `json:"description_notes"`
	ReviewDates    string `json:"review_dates_str"`
	ProcessingTime string `json:"processing_time"`
	ShippingCost   string `json:"shipping_cost_str"`

	Path     ExtractionPath `json:"path"`
	Warnings []string       `json:"warnings,omitempty"`
}

// ListingKeys lists the keys of Listing.Map in display order.
var ListingKeys = []string{
	"product_url",
	"product_title",
	"price_str",
	"shop_name",
	"shop_url",
	"processing_time",
	"shipping_cost_str",
	"review_dates_str",
	"description_notes",
}

// Map returns the listing as a flat field mapping. Every key is present.
func (l *Listing) Map() map[string]string {
	return map[string]string{
		"product_url":       l.URL,
		"product_title":     l.Title,
		"price_str":         l.Price,
		"shop_name":         l.ShopName,
		"shop_url":          l.ShopURL,
		"description_notes": l.Description,
		"review_dates_str":  l.ReviewDates,
		"processing_time":   l.ProcessingTime,
		"shipping_cost_str": l.ShippingCost,
	}
}

// ListingParser extracts listing fields from pasted page markup.
type ListingParser interface {
	// ParseListing never fails on malformed markup: fields that cannot be
	// found are left empty. An error means the markup could not be read at
	// all.
	ParseListing(markup string) (*Listing, error)
}
