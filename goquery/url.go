package goquery

import (
	"net/url"
	"regexp"
	"strings"
)

var shopPathRe = regexp.MustCompile(`/shop/([A-Za-z0-9_-]+)`)

// CleanURL drops the query string and fragment from a listing or shop URL
// and trims a trailing slash. URLs without a query are returned as is.
// A missing scheme on an absolute URL is assumed to be https; relative
// paths stay relative.
func CleanURL(raw string) string {
	if raw == "" || !strings.Contains(raw, "?") {
		return raw
	}
	s := raw
	if !strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return raw
	}
	cleaned := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}).String()
	return strings.TrimSuffix(cleaned, "/")
}

// ShopNameFromURL returns the shop name segment of a shop URL, or "".
func ShopNameFromURL(shopURL string) string {
	m := shopPathRe.FindStringSubmatch(shopURL)
	if m == nil {
		return ""
	}
	return m[1]
}
