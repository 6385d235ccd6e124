package pastescout

// ReadLabel reads the value for spec from the line after the label at i,
// or the line after that when the next line is a noise marker. It returns
// the converted value and the number of lines consumed, label included.
// A value that fails the shape check leaves the label unmatched.
func ReadLabel(lines Lines, i int, spec FieldSpec, noise ...Marker) (Value, int, bool) {
	j := i + 1
	if j < lines.Len() && MatchAny(lines[j], noise) {
		j++
	}
	if j >= lines.Len() {
		return Value{}, 1, false
	}
	v, ok := spec.ConvertValue(lines[j])
	if !ok {
		return Value{}, 1, false
	}
	return v, j - i + 1, true
}

// MatchSpec returns the first spec whose label equals line.
func MatchSpec(line string, specs []FieldSpec) (FieldSpec, bool) {
	for _, spec := range specs {
		if spec.Matches(line) {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// ScanLabels walks lines[start:end] looking for known labels and stores
// each validated value in fields as Confirmed. The first labeled value for
// a key wins unless its spec allows overwrite; provisional values are
// always replaced. Lines matching one of the noise markers are skipped.
// Returns the number of values stored.
func ScanLabels(lines Lines, start, end int, specs []FieldSpec, fields Fields, noise ...Marker) int {
	end = min(end, lines.Len())
	stored := 0

	i := max(start, 0)
	for i < end {
		line := lines[i]
		if MatchAny(line, noise) {
			i++
			continue
		}

		spec, ok := MatchSpec(line, specs)
		if !ok {
			i++
			continue
		}

		v, consumed, ok := ReadLabel(lines, i, spec, noise...)
		if ok && fields.Set(spec.Key, v, Confirmed, spec.Overwrite) {
			stored++
		}
		i += consumed
	}
	return stored
}
