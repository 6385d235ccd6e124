package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pastescout"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	arrivalRe      = regexp.MustCompile(`(?i)get it by|arrives by`)
	byRe           = regexp.MustCompile(`(?i)\bby\b`)
	spacedByRe     = regexp.MustCompile(`(?i) by `)
	edgeJunkRe     = regexp.MustCompile(`^[^\w]+|[^\w]+$`)
	deliveryCostRe = regexp.MustCompile(`(?i)delivery cost:`)
	costAmountRe   = regexp.MustCompile(`[£$€](\d+\.?\d*)`)
	freeDeliveryRe = regexp.MustCompile(`(?i)free delivery|free shipping`)
)

// applyShipping reads the estimated delivery window and delivery cost from
// the shipping section. Neither is available in the embedded record.
func (p *ListingParser) applyShipping(doc *goquery.Document, l *pastescout.Listing) {
	section := doc.Find("div#shipping-and-returns-div").First()
	if section.Length() == 0 {
		return
	}
	l.ProcessingTime = p.deliveryDays(section)
	l.ShippingCost = shippingCost(section)
}

// deliveryDays tries increasingly loose strategies and returns the day
// count from the first one that yields a parseable date.
func (p *ListingParser) deliveryDays(section *goquery.Selection) string {
	today := p.now()
	days := func(text string) (string, bool) {
		text = strings.TrimSpace(text)
		if text == "" {
			return "", false
		}
		return pastescout.DaysUntil(text, today)
	}

	item := section.Find("li[data-shipping-estimated-delivery]").First()

	// Attribute-tagged value span.
	if span := item.Find("span[data-shipping-edd-value]").First(); span.Length() > 0 {
		if d, ok := days(span.Text()); ok {
			return d
		}
	}

	// Arrival phrase inside the tagged list item.
	for _, n := range item.Nodes {
		if text := findText(n, arrivalRe); text != nil {
			parts := byRe.Split(strings.TrimSpace(text.Data), -1)
			if d, ok := days(parts[len(parts)-1]); ok {
				return d
			}
		}
	}

	// Arrival phrase anywhere in the section.
	var result string
	section.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		switch s.Nodes[0].DataAtom {
		case atom.P, atom.Span, atom.Div, atom.Li:
		default:
			return true
		}
		text := joinedText(s.Nodes[0])
		if !arrivalRe.MatchString(text) {
			return true
		}
		parts := spacedByRe.Split(text, -1)
		datePart := strings.TrimSpace(edgeJunkRe.ReplaceAllString(strings.TrimSpace(parts[len(parts)-1]), ""))
		if d, ok := days(datePart); ok {
			result = d
			return false
		}
		return true
	})
	return result
}

// shippingCost reads the amount near a "Delivery cost:" phrase, or "0.00"
// when the section advertises free delivery. Returns "" when neither is
// present.
func shippingCost(section *goquery.Selection) string {
	for _, n := range section.Nodes {
		label := findText(n, deliveryCostRe)
		if label == nil {
			continue
		}
		if label.Parent != nil {
			if cost, ok := amountIn(joinedText(label.Parent)); ok {
				return cost
			}
		}
		if cost, ok := amountIn(label.Data); ok {
			return cost
		}
	}

	for _, n := range section.Nodes {
		if findText(n, freeDeliveryRe) != nil {
			return formatAmount(0)
		}
	}
	return ""
}

func amountIn(text string) (string, bool) {
	m := costAmountRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return "", false
	}
	return formatAmount(f), true
}

// findText returns the first text node under n whose content matches re.
func findText(n *html.Node, re *regexp.Regexp) *html.Node {
	if n.Type == html.TextNode && re.MatchString(n.Data) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findText(c, re); found != nil {
			return found
		}
	}
	return nil
}

// joinedText returns the trimmed text nodes under n joined by single
// spaces.
func joinedText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
