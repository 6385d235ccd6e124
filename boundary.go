package pastescout

import (
	"regexp"
	"strings"
)

// MarkerKind selects how a Marker compares against a line.
type MarkerKind int

// Marker kinds.
const (
	MarkerExact MarkerKind = iota
	MarkerFold
	MarkerContains
	MarkerPrefix
	MarkerPattern
)

// Marker is a literal phrase or pattern used to locate the start or end of
// a region of interest.
type Marker struct {
	Kind    MarkerKind
	Text    string
	Pattern *regexp.Regexp
}

// Exact matches a line equal to s.
func Exact(s string) Marker { return Marker{Kind: MarkerExact, Text: s} }

// Fold matches a line equal to s, ignoring case.
func Fold(s string) Marker { return Marker{Kind: MarkerFold, Text: s} }

// Contains matches a line containing s.
func Contains(s string) Marker { return Marker{Kind: MarkerContains, Text: s} }

// Prefix matches a line starting with s.
func Prefix(s string) Marker { return Marker{Kind: MarkerPrefix, Text: s} }

// Pattern matches a line against a case-insensitive regular expression.
// It panics if expr does not compile, like regexp.MustCompile.
func Pattern(expr string) Marker {
	return Marker{Kind: MarkerPattern, Text: expr, Pattern: regexp.MustCompile("(?i)" + expr)}
}

// Match reports whether line matches the marker.
func (m Marker) Match(line string) bool {
	line = strings.TrimSpace(line)
	switch m.Kind {
	case MarkerFold:
		return strings.EqualFold(line, m.Text)
	case MarkerContains:
		return strings.Contains(line, m.Text)
	case MarkerPrefix:
		return strings.HasPrefix(line, m.Text)
	case MarkerPattern:
		return m.Pattern != nil && m.Pattern.MatchString(line)
	}
	return line == m.Text
}

// MatchAny reports whether line matches any of markers.
func MatchAny(line string, markers []Marker) bool {
	for _, m := range markers {
		if m.Match(line) {
			return true
		}
	}
	return false
}

// IndexOf returns the first index in [from, to) whose line matches any of
// markers, or -1.
func IndexOf(lines Lines, from, to int, markers []Marker) int {
	if len(markers) == 0 {
		return -1
	}
	to = min(to, lines.Len())
	for i := max(from, 0); i < to; i++ {
		if MatchAny(lines[i], markers) {
			return i
		}
	}
	return -1
}

// Region is a half-open line range [Start, End).
type Region struct {
	Start int
	End   int

	// Found is false when no start marker matched and the region is the
	// whole remaining input.
	Found bool

	// Via names the marker class that located the start: "anchor",
	// "header", "title" or "" when not found.
	Via string
}

// Len returns the number of lines in the region.
func (r Region) Len() int {
	return max(r.End-r.Start, 0)
}

// Boundary describes how to locate a section in a line sequence.
//
// Start markers are tried by class in priority order: an Anchor (such as a
// toolbar button) followed within HeaderReach lines by a Header, then a
// Header on its own, then a bare Title. The region begins on the line
// after the matched marker plus Offset, skipping any SubHeaders, and ends
// at the first End marker or the end of input.
type Boundary struct {
	Anchors    []Marker
	Headers    []Marker
	Titles     []Marker
	SubHeaders []Marker
	Ends       []Marker

	// Window limits how many lines after the search origin are searched
	// for start markers. Zero searches all lines.
	Window int

	// HeaderReach is how many lines after an anchor a header may appear.
	// Zero means 10.
	HeaderReach int

	// Offset skips additional lines between the start marker and the data.
	Offset int
}

// Find locates the region in lines, searching from index from. When no
// start marker matches, the region covers lines[from:] with Found false.
func (b Boundary) Find(lines Lines, from int) Region {
	n := lines.Len()
	from = max(from, 0)
	limit := n
	if b.Window > 0 {
		limit = min(from+b.Window, n)
	}

	start, via := b.findStart(lines, from, limit)
	r := Region{Start: from, End: n}
	if start >= 0 {
		r.Start = min(start+1+b.Offset, n)
		r.Found = true
		r.Via = via
		for r.Start < n && MatchAny(lines[r.Start], b.SubHeaders) {
			r.Start++
		}
	}

	if end := IndexOf(lines, r.Start, n, b.Ends); end >= 0 {
		r.End = end
	}
	return r
}

// findStart returns the index of the start marker line and its class.
func (b Boundary) findStart(lines Lines, from, limit int) (int, string) {
	reach := b.HeaderReach
	if reach <= 0 {
		reach = 10
	}

	for i := from; i < limit && len(b.Anchors) > 0; i++ {
		if !MatchAny(lines[i], b.Anchors) {
			continue
		}
		if len(b.Headers) == 0 {
			return i, "anchor"
		}
		if h := IndexOf(lines, i+1, i+reach, b.Headers); h >= 0 {
			return h, "anchor"
		}
	}

	if h := IndexOf(lines, from, limit, b.Headers); h >= 0 {
		return h, "header"
	}
	if t := IndexOf(lines, from, limit, b.Titles); t >= 0 {
		return t, "title"
	}
	return -1, ""
}
