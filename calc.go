package pastescout

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	currencyStripper = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "", "\t", "")
	numberRe         = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)$`)
	integerRe        = regexp.MustCompile(`^-?\d+$`)
	deliveryDateRe   = regexp.MustCompile(`(\d{1,2})(?:-(\d{1,2}))?\s+([A-Za-z]{3})`)
)

// CurrencyToNumber strips currency symbols, thousands separators,
// whitespace and a trailing "+" and parses the rest as a float.
// Returns false when nothing numeric remains.
func CurrencyToNumber(text string) (float64, bool) {
	s := strings.TrimSuffix(currencyStripper.Replace(strings.TrimSpace(text)), "+")
	if !numberRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CountToInteger strips thousands separators and parses an integer.
func CountToInteger(text string) (int, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if !integerRe.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PercentToNumber parses "2.5%" or "2.5" as 2.5.
func PercentToNumber(text string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	if !numberRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseReviewDate reformats a "D Mon, YYYY" display date as YYYY-MM-DD.
func ParseReviewDate(text string) (string, bool) {
	t, err := time.Parse("2 Jan, 2006", strings.TrimSpace(text))
	if err != nil {
		return "", false
	}
	return t.Format(time.DateOnly), true
}

// DaysUntil converts an estimated delivery date ("30 Apr") or date range
// ("06-08 May") into a day count relative to today ("10 days" or
// "16-18 days").
//
// Dates are resolved in today's year and rolled to the next year when they
// would otherwise be in the past. A range end that lands before its start
// is moved to the year after the start. Unrecognised input is returned
// unchanged with false.
func DaysUntil(text string, today time.Time) (string, bool) {
	if text == "" {
		return "", false
	}

	m := deliveryDateRe.FindStringSubmatch(text)
	if m == nil {
		return text, false
	}
	startDay, endDay, month := m[1], m[2], m[3]

	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	start, ok := resolveDeliveryDate(startDay, month, today)
	if !ok {
		return text, false
	}
	startDelta := daysBetween(today, start)

	if endDay == "" {
		if startDelta < 0 {
			return text, false
		}
		return fmt.Sprintf("%d days", startDelta), true
	}

	end, ok := resolveDeliveryDate(endDay, month, today)
	if !ok {
		return text, false
	}
	if end.Before(start) {
		end, ok = parseDayMonth(endDay, month, start.Year()+1)
		if !ok {
			return text, false
		}
	}
	endDelta := daysBetween(today, end)
	if startDelta < 0 || endDelta < 0 {
		return text, false
	}
	return fmt.Sprintf("%d-%d days", startDelta, endDelta), true
}

// resolveDeliveryDate places day/month in today's year, or the next one
// when that date has already passed.
func resolveDeliveryDate(day, month string, today time.Time) (time.Time, bool) {
	t, ok := parseDayMonth(day, month, today.Year())
	if !ok {
		return time.Time{}, false
	}
	if t.Before(today) {
		return parseDayMonth(day, month, today.Year()+1)
	}
	return t, true
}

func parseDayMonth(day, month string, year int) (time.Time, bool) {
	t, err := time.Parse("2 Jan 2006", fmt.Sprintf("%s %s %d", day, month, year))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
