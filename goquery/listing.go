// Package goquery extracts listing fields from pasted product-page markup
// using github.com/PuerkitoBio/goquery.
package goquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/jsonld"
)

// Ensure ListingParser implements pastescout.ListingParser at compile time.
var _ pastescout.ListingParser = (*ListingParser)(nil)

// priceClasses are class substrings of the paragraph that carries the
// price inside the buy box, in the order the layouts introduced them.
var priceClasses = []string{"wt-text-title-larger", "wt-text-title-03", "wt-text-heading-03"}

var reviewMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ListingParser reads a product listing page. The embedded JSON-LD
// Product record is preferred; every field it does not supply is probed
// from the markup independently.
type ListingParser struct {
	now func() time.Time
}

// Option configures a ListingParser.
type Option func(*ListingParser)

// WithClock sets the clock used to turn delivery dates into day counts.
func WithClock(now func() time.Time) Option {
	return func(p *ListingParser) {
		p.now = now
	}
}

// NewListingParser creates a new ListingParser.
func NewListingParser(opts ...Option) *ListingParser {
	p := &ListingParser{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseListing extracts listing fields from markup.
func (p *ListingParser) ParseListing(markup string) (*pastescout.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, pastescout.Errorf(pastescout.EINTERNAL, "failed to parse HTML: %v", err)
	}

	l := &pastescout.Listing{Path: pastescout.PathMarkup}
	structured := p.applyStructured(doc, l)

	probed := p.applyMarkup(doc, l)
	if structured {
		l.Path = pastescout.PathStructured
		if probed {
			l.Path = pastescout.PathMixed
		}
	}

	p.applyShipping(doc, l)
	return l, nil
}

// applyStructured fills l from the first embedded Product record. A
// malformed record is noted in l.Warnings and skipped.
func (p *ListingParser) applyStructured(doc *goquery.Document, l *pastescout.Listing) bool {
	var product *jsonld.Product
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		prod, err := jsonld.DecodeProduct(s.Text())
		if err != nil {
			if pastescout.ErrorCode(err) == pastescout.EINVALID {
				l.Warnings = append(l.Warnings, "structured data: "+pastescout.ErrorMessage(err))
			}
			return true
		}
		product = prod
		return false
	})
	if product == nil {
		return false
	}

	l.URL = CleanURL(product.URL)
	l.Title = product.Name
	l.Price = product.Price
	l.ShopName = product.BrandName
	l.Description = product.Description
	l.ReviewDates = strings.Join(product.ReviewDates, ", ")
	return true
}

// applyMarkup probes markup for each field still empty. It reports whether
// any core field (URL, title, price, shop name) was filled this way.
func (p *ListingParser) applyMarkup(doc *goquery.Document, l *pastescout.Listing) bool {
	probed := false

	if l.URL == "" {
		if href, ok := doc.Find(`link[rel="canonical"]`).First().Attr("href"); ok && href != "" {
			l.URL = CleanURL(href)
			probed = true
		}
	}

	if l.Title == "" {
		if h1 := doc.Find("h1").First(); h1.Length() > 0 {
			l.Title = strings.TrimSpace(h1.Text())
			probed = probed || l.Title != ""
		}
	}

	if l.Price == "" {
		l.Price = buyBoxPrice(doc)
		probed = probed || l.Price != ""
	}

	shop := doc.Find(`a[href*="/shop/"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		return !strings.Contains(href, "reviews")
	}).First()
	if shop.Length() > 0 {
		if l.ShopName == "" {
			l.ShopName = strings.TrimSpace(shop.Text())
			probed = probed || l.ShopName != ""
		}
		if href, ok := shop.Attr("href"); ok && href != "" {
			l.ShopURL = CleanURL(href)
		}
	}
	if l.ShopName == "" {
		l.ShopName = ShopNameFromURL(l.ShopURL)
	}

	if l.Description == "" {
		var paras []string
		doc.Find(`div[data-id="description-text"]`).First().Find("p").Each(func(_ int, s *goquery.Selection) {
			paras = append(paras, strings.TrimSpace(s.Text()))
		})
		l.Description = strings.Join(paras, "\n")
	}

	if l.ReviewDates == "" {
		l.ReviewDates = strings.Join(reviewDates(doc), ", ")
	}

	return probed
}

// buyBoxPrice reads the price paragraph inside the buy box.
func buyBoxPrice(doc *goquery.Document) string {
	region := doc.Find(`[data-buy-box-region="price"]`).First()
	if region.Length() == 0 {
		return ""
	}
	para := region.Find("p").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classContainsAny(s, priceClasses...)
	}).First()
	if para.Length() == 0 {
		return ""
	}
	if f, ok := leadingAmount(para.Text()); ok {
		return formatAmount(f)
	}
	return ""
}

// reviewDates reads "D Mon, YYYY" captions from the reviews section.
func reviewDates(doc *goquery.Document) []string {
	section := doc.Find(`div[id^="reviews"]`).First()
	if section.Length() == 0 {
		return nil
	}

	var dates []string
	section.Find("p").Each(func(_ int, s *goquery.Selection) {
		if !classContainsAny(s, "wt-text-caption", "wt-text-body-01") || !classContainsAny(s, "wt-text-gray") {
			return
		}
		text := strings.TrimSpace(s.Text())
		if !strings.Contains(text, ",") || !containsAny(text, reviewMonths) {
			return
		}
		if date, ok := pastescout.ParseReviewDate(text); ok {
			dates = append(dates, date)
		}
	})
	return dates
}

// leadingAmount strips currency symbols, commas and "+" and parses the
// first remaining token, so "£1,250.00+ (20% off)" reads as 1250.
func leadingAmount(text string) (float64, bool) {
	cleaned := strings.NewReplacer("£", "", "$", "", "€", "", ",", "", "+", "").Replace(text)
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return 0, false
	}
	return pastescout.CurrencyToNumber(fields[0])
}

// formatAmount writes f in its shortest decimal form with at least one
// fractional digit: 12.5, 1250.0, 0.0.
func formatAmount(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func classContainsAny(s *goquery.Selection, subs ...string) bool {
	class, ok := s.Attr("class")
	if !ok {
		return false
	}
	return containsAny(class, subs)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
