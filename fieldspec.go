package pastescout

import (
	"regexp"
	"strings"
)

// Converter names how a shape-validated raw string becomes a typed Value.
type Converter int

// Converters. The zero value is AsText.
const (
	AsText Converter = iota
	AsCount
	AsCurrency
	AsPercent
	AsDecimal
)

var converterNames = []string{"text", "count", "currency", "percent", "decimal"}

// Apply converts raw. It returns false when raw cannot be converted.
func (c Converter) Apply(raw string) (Value, bool) {
	switch c {
	case AsCount:
		n, ok := CountToInteger(raw)
		return IntValue(n), ok
	case AsCurrency, AsDecimal:
		f, ok := CurrencyToNumber(raw)
		return FloatValue(f), ok
	case AsPercent:
		f, ok := PercentToNumber(raw)
		return FloatValue(f), ok
	}
	return StringValue(raw), true
}

// String returns the converter's configuration name.
func (c Converter) String() string {
	if c < 0 || int(c) >= len(converterNames) {
		return "text"
	}
	return converterNames[c]
}

// ParseConverter resolves a converter by its configuration name. An empty
// name is AsText.
func ParseConverter(name string) (Converter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return AsText, nil
	}
	for i, n := range converterNames {
		if n == name {
			return Converter(i), nil
		}
	}
	return AsText, Errorf(EINVALID, "unknown converter %q", name)
}

// Common value shapes.
var (
	ShapeAny      = regexp.MustCompile(`.+`)
	ShapeCurrency = regexp.MustCompile(`^[$£€][\d,.]+$`)
	ShapeCount    = regexp.MustCompile(`^[\d,]+$`)
	ShapeDecimal  = regexp.MustCompile(`^[\d,.]+$`)
	ShapePercent  = regexp.MustCompile(`^[\d.]+%?$`)
	ShapeAge      = regexp.MustCompile(`(?i)^\d+\s+(?:Mo\.?|months?)$`)
	ShapeLevel    = regexp.MustCompile(`(?i)^(High|Medium|Low)$`)
)

// FieldSpec declares how a labeled field is read: the label line text,
// the shape its value line must match, the key it is stored under and
// how the raw value is converted.
type FieldSpec struct {
	Label string
	Shape *regexp.Regexp
	Key   string

	// Convert defaults to AsText.
	Convert Converter

	// Overwrite allows a later match of this spec to replace a value
	// already confirmed by an earlier label for the same key.
	Overwrite bool
}

// Matches reports whether line is this spec's label (case-insensitive).
func (s FieldSpec) Matches(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), s.Label)
}

// Accepts reports whether raw satisfies the value shape.
func (s FieldSpec) Accepts(raw string) bool {
	if raw == "" {
		return false
	}
	if s.Shape == nil {
		return true
	}
	return s.Shape.MatchString(raw)
}

// ConvertValue applies the spec's converter to a shape-validated raw string.
func (s FieldSpec) ConvertValue(raw string) (Value, bool) {
	if !s.Accepts(raw) {
		return Value{}, false
	}
	return s.Convert.Apply(raw)
}
