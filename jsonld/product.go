// Package jsonld decodes embedded schema.org Product records.
package jsonld

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/pastescout"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// productSchema rejects Product records whose scalar fields carry the
// wrong JSON types. The @type check happens before validation so that
// non-Product records are skipped rather than reported.
const productSchema = `{
	"type": "object",
	"required": ["@type"],
	"properties": {
		"@type": {"const": "Product"},
		"name": {"type": "string"},
		"url": {"type": "string"},
		"description": {"type": "string"},
		"brand": {"type": ["object", "string"]},
		"offers": {"type": ["object", "array"]},
		"review": {"type": ["array", "object"]}
	}
}`

var schema = jsonschema.MustCompileString("product.json", productSchema)

// Product holds the fields read from an embedded Product record.
type Product struct {
	URL         string
	Name        string
	Price       string
	BrandName   string
	Description string
	ReviewDates []string
}

// DecodeProduct parses raw JSON-LD. It returns ENOTFOUND when raw is valid
// JSON but not a Product, and EINVALID when raw is not valid JSON or the
// Product does not match the expected shape.
func DecodeProduct(raw string) (*Product, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, pastescout.Errorf(pastescout.EINVALID, "decode JSON-LD: %v", err)
	}

	obj, ok := v.(map[string]any)
	if !ok || obj["@type"] != "Product" {
		return nil, pastescout.Errorf(pastescout.ENOTFOUND, "JSON-LD is not a Product")
	}

	if err := schema.Validate(v); err != nil {
		return nil, pastescout.Errorf(pastescout.EINVALID, "JSON-LD Product: %v", err)
	}

	p := &Product{
		URL:         str(obj["url"]),
		Name:        str(obj["name"]),
		Description: str(obj["description"]),
		Price:       offerPrice(obj["offers"]),
	}

	if brand, ok := obj["brand"].(map[string]any); ok {
		p.BrandName = str(brand["name"])
	}

	if reviews, ok := obj["review"].([]any); ok {
		for _, r := range reviews {
			review, ok := r.(map[string]any)
			if !ok {
				continue
			}
			if date := str(review["datePublished"]); date != "" {
				p.ReviewDates = append(p.ReviewDates, date)
			}
		}
	}

	return p, nil
}

// offerPrice reads the low price of an AggregateOffer or the price of a
// single Offer. Offer lists are ignored.
func offerPrice(v any) string {
	offers, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	if offers["@type"] == "AggregateOffer" {
		return str(offers["lowPrice"])
	}
	return str(offers["price"])
}

// str renders a JSON scalar as text. Numbers keep their literal form.
func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return fmt.Sprint(t)
	}
	return ""
}
