package pastescout

import "regexp"

// Column declares one positional line of a fixed-shape record.
type Column struct {
	// Key is where the value is stored. Empty keys are validated but not
	// stored.
	Key string

	// Shape must match the line. A nil Shape accepts any non-empty line.
	Shape *regexp.Regexp

	// Exclude rejects lines matching any of these patterns.
	Exclude []*regexp.Regexp

	// Convert defaults to AsText.
	Convert Converter

	// Optional columns may be absent; Default is stored in their place
	// when it is set.
	Optional bool
	Default  *Value

	// Provisional stores the value as a heuristic guess rather than a
	// confirmed one.
	Provisional bool
}

// Accepts reports whether line satisfies the column.
func (c Column) Accepts(line string) bool {
	if line == "" {
		return false
	}
	if c.Shape != nil && !c.Shape.MatchString(line) {
		return false
	}
	for _, re := range c.Exclude {
		if re.MatchString(line) {
			return false
		}
	}
	return true
}

func (c Column) value(line string) (Value, bool) {
	return c.Convert.Apply(line)
}

func (c Column) confidence() Confidence {
	if c.Provisional {
		return Provisional
	}
	return Confirmed
}

// Record is one decoded instance of a repeating record shape, along with
// the line range [Start, End) it was decoded from.
type Record struct {
	Fields Fields
	Start  int
	End    int
}

// DecodeStride decodes records that occupy exactly len(cols) lines each.
// Every column of a chunk must validate for the chunk to be accepted; on
// failure the scan advances one line and retries.
func DecodeStride(lines Lines, r Region, cols []Column) []Record {
	n := len(cols)
	end := min(r.End, lines.Len())
	if n == 0 {
		return nil
	}

	var records []Record
	i := max(r.Start, 0)
	for i+n <= end {
		rec, ok := decodeChunk(lines, i, cols)
		if !ok {
			i++
			continue
		}
		records = append(records, rec)
		i += n
	}
	return records
}

// decodeChunk decodes len(cols) consecutive lines starting at i.
func decodeChunk(lines Lines, i int, cols []Column) (Record, bool) {
	if i+len(cols) > lines.Len() {
		return Record{}, false
	}
	rec := Record{Fields: Fields{}, Start: i, End: i + len(cols)}
	for k, col := range cols {
		line := lines[i+k]
		if !col.Accepts(line) {
			return Record{}, false
		}
		v, ok := col.value(line)
		if !ok {
			return Record{}, false
		}
		if col.Key != "" {
			rec.Fields.Set(col.Key, v, col.confidence(), false)
		}
	}
	return rec, true
}

// DecodeSequence decodes records laid out one field per line in column
// order, where optional columns may be missing. A record is emitted only
// when every mandatory column validates in sequence; otherwise the scan
// resumes one line after the record's first line. Reaching the end of the
// region while a mandatory column is pending ends decoding.
func DecodeSequence(lines Lines, r Region, cols []Column) []Record {
	end := min(r.End, lines.Len())
	if len(cols) == 0 {
		return nil
	}

	var records []Record
	k := max(r.Start, 0)
	for k < end {
		rec, next, status := decodeSequential(lines, k, end, cols)
		switch status {
		case sequenceExhausted:
			return records
		case sequenceMismatch:
			k++
		default:
			records = append(records, rec)
			k = next
		}
	}
	return records
}

type sequenceStatus int

const (
	sequenceOK sequenceStatus = iota
	sequenceMismatch
	sequenceExhausted
)

func decodeSequential(lines Lines, k, end int, cols []Column) (Record, int, sequenceStatus) {
	rec := Record{Fields: Fields{}, Start: k}
	pos := k
	for _, col := range cols {
		if pos >= end {
			if col.Optional {
				storeDefault(rec.Fields, col)
				continue
			}
			return Record{}, 0, sequenceExhausted
		}

		line := lines[pos]
		if col.Accepts(line) {
			if v, ok := col.value(line); ok {
				if col.Key != "" {
					rec.Fields.Set(col.Key, v, col.confidence(), false)
				}
				pos++
				continue
			}
		}
		if col.Optional {
			storeDefault(rec.Fields, col)
			continue
		}
		return Record{}, 0, sequenceMismatch
	}
	rec.End = pos
	return rec, pos, sequenceOK
}

func storeDefault(fields Fields, col Column) {
	if col.Key != "" && col.Default != nil {
		fields.Set(col.Key, *col.Default, col.confidence(), false)
	}
}

// DecodeLabeled decodes records from label/value line pairs. Unlabeled
// lines are skipped one at a time. A label whose key is already set in the
// current record (and may not be overwritten) closes that record and opens
// the next. Records missing any of the required keys are discarded.
func DecodeLabeled(lines Lines, r Region, specs []FieldSpec, required []string) []Record {
	end := min(r.End, lines.Len())

	var records []Record
	cur := Record{Fields: Fields{}, Start: -1}
	flush := func() {
		if cur.Start >= 0 && hasAll(cur.Fields, required) {
			records = append(records, cur)
		}
		cur = Record{Fields: Fields{}, Start: -1}
	}

	i := max(r.Start, 0)
	for i < end {
		spec, ok := MatchSpec(lines[i], specs)
		if !ok {
			i++
			continue
		}
		v, consumed, ok := ReadLabel(lines, i, spec)
		if !ok {
			i++
			continue
		}
		if cur.Fields.Has(spec.Key) && !spec.Overwrite {
			flush()
		}
		if cur.Start < 0 {
			cur.Start = i
		}
		cur.Fields.Set(spec.Key, v, Confirmed, spec.Overwrite)
		i += consumed
		cur.End = i
	}
	flush()
	return records
}

func hasAll(fields Fields, keys []string) bool {
	for _, k := range keys {
		if !fields.Has(k) {
			return false
		}
	}
	return true
}

// FindSignatures returns the start index of every place in the region
// where the signature columns match consecutively. Matches do not
// overlap.
func FindSignatures(lines Lines, r Region, sig []Column) []int {
	end := min(r.End, lines.Len())
	if len(sig) == 0 {
		return nil
	}

	var starts []int
	i := max(r.Start, 0)
	for i+len(sig) <= end {
		if _, ok := decodeChunk(lines, i, sig); ok {
			starts = append(starts, i)
			i += len(sig)
			continue
		}
		i++
	}
	return starts
}

// SignatureSpans converts signature start indexes into candidate record
// regions: each span runs from one signature to the next, and the last to
// end.
func SignatureSpans(starts []int, end int) []Region {
	spans := make([]Region, 0, len(starts))
	for k, s := range starts {
		e := end
		if k+1 < len(starts) {
			e = starts[k+1]
		}
		spans = append(spans, Region{Start: s, End: e, Found: true, Via: "signature"})
	}
	return spans
}

// DecodeSignature decodes the signature columns at the start of span.
func DecodeSignature(lines Lines, span Region, sig []Column) (Record, bool) {
	rec, ok := decodeChunk(lines, span.Start, sig)
	if !ok {
		return Record{}, false
	}
	rec.End = span.End
	return rec, true
}
