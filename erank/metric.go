package erank

import (
	"regexp"
	"strconv"
	"strings"
)

var belowRe = regexp.MustCompile(`< ?(\d+(?:\.\d+)?)`)

// MetricValue converts a displayed keyword metric to a number. "1,234"
// reads as 1234 and "87%" as 87. A "< 20" bound reads as just under 20,
// or 1 when the bound has no number. "N/A", "Unknown" and anything else
// unparseable report false.
func MetricValue(text string) (float64, bool) {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text)), ",", "")
	if s == "" || strings.Contains(s, "unknown") || strings.Contains(s, "n/a") {
		return 0, false
	}

	if strings.Contains(s, "<") {
		m := belowRe.FindStringSubmatch(s)
		if m == nil {
			return 1, true
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 1, true
		}
		return f - 0.01, true
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "%", "")), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
