package pastescout

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Lines is an ordered sequence of trimmed, non-empty lines. Indexes into
// Lines are the coordinate system used by boundary detection and record
// decoding.
type Lines []string

// escapedBreaks restores line breaks and tabs that an intermediate copy
// step escaped into literal two-character sequences.
var escapedBreaks = strings.NewReplacer(`\r\n`, "\n", `\n`, "\n", `\t`, "\t")

// foldCopied maps non-breaking and other Unicode spaces to a plain space
// and full-width digits to ASCII digits. Every other rune is kept as
// written.
var foldCopied = runes.Map(func(r rune) rune {
	switch {
	case r >= '\uff10' && r <= '\uff19':
		return '0' + (r - '\uff10')
	case r > unicode.MaxASCII && unicode.IsSpace(r):
		return ' '
	}
	return r
})

// SplitLines normalizes raw pasted text into Lines. Spaces and digits that
// browsers leave in copied text in non-ASCII forms are folded so shape
// patterns can stay ASCII; all other content is returned unchanged.
func SplitLines(raw string) Lines {
	if raw == "" {
		return nil
	}

	folded, _, err := transform.String(foldCopied, raw)
	if err != nil {
		folded = raw
	}
	text := escapedBreaks.Replace(folded)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines Lines
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Len returns the number of lines.
func (l Lines) Len() int {
	return len(l)
}

// At returns the line at i, or an empty string when i is out of range.
func (l Lines) At(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i]
}

// Slice returns the lines in [start, end), clamped to the sequence.
func (l Lines) Slice(start, end int) Lines {
	start = max(start, 0)
	end = min(end, len(l))
	if start >= end {
		return nil
	}
	return l[start:end]
}
