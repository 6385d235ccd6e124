package pastescout

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

// Kind identifies the scalar type held by a Value.
type Kind int

// Value kinds.
const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// Value is a typed scalar extracted from a page.
type Value struct {
	Kind  Kind
	Str   string
	Int   int
	Float float64
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// IntValue returns an integer Value.
func IntValue(n int) Value { return Value{Kind: KindInt, Int: n} }

// FloatValue returns a float Value.
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Number returns the value as a float when it is numeric.
func (v Value) Number() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	}
	return 0, false
}

// String formats the value for display.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	}
	return v.Str
}

// MarshalJSON encodes the value as a bare JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		return json.Marshal(v.Float)
	}
	return json.Marshal(v.Str)
}

// Confidence tags how a field value was obtained.
type Confidence int

// Confidence levels. A Provisional value came from a positional heuristic
// and may be replaced by a labeled match; a Confirmed value passed a label
// or shape check.
const (
	Provisional Confidence = iota + 1
	Confirmed
)

// Field is a Value with its confidence tag.
type Field struct {
	Value      Value
	Confidence Confidence
}

// Fields maps field names to extracted values. A key present in Fields
// always holds a value that passed shape validation or was derived by a
// calculator.
type Fields map[string]Field

// Set stores v under key unless that would downgrade or clobber an
// existing value. Provisional values never replace confirmed ones. A
// confirmed value replaces a confirmed one only when overwrite is set.
// Reports whether the value was stored.
func (f Fields) Set(key string, v Value, c Confidence, overwrite bool) bool {
	existing, ok := f[key]
	if ok {
		switch {
		case existing.Confidence == Provisional && c == Confirmed:
		case existing.Confidence == Provisional && c == Provisional:
			return false
		case existing.Confidence == Confirmed && c == Confirmed && overwrite:
		default:
			return false
		}
	}
	f[key] = Field{Value: v, Confidence: c}
	return true
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (Value, bool) {
	field, ok := f[key]
	return field.Value, ok
}

// Text returns the display form of key, or "" when absent.
func (f Fields) Text(key string) string {
	field, ok := f[key]
	if !ok {
		return ""
	}
	return field.Value.String()
}

// Number returns key as a float when present and numeric.
func (f Fields) Number(key string) (float64, bool) {
	field, ok := f[key]
	if !ok {
		return 0, false
	}
	return field.Value.Number()
}

// Keys returns the field names in sorted order.
func (f Fields) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	return maps.Clone(f)
}

// MarshalJSON encodes the fields as a flat name → scalar object.
func (f Fields) MarshalJSON() ([]byte, error) {
	flat := make(map[string]Value, len(f))
	for k, field := range f {
		flat[k] = field.Value
	}
	return json.Marshal(flat)
}
