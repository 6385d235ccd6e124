package pastescout

// Selection is the outcome of reducing candidate records to one.
type Selection struct {
	Record Record
	Index  int

	// LowConfidence is set when no candidate had a usable ranking value
	// and the first candidate was returned.
	LowConfidence bool

	// Discarded counts the candidates that were not selected.
	Discarded int
}

// SelectBest returns the record with the largest numeric value under key.
// Ties go to the earliest record. If no record carries a numeric value
// for key, the first record is returned with LowConfidence set. Returns
// false when records is empty.
func SelectBest(records []Record, key string) (Selection, bool) {
	if len(records) == 0 {
		return Selection{}, false
	}

	best := -1
	var bestValue float64
	for i, rec := range records {
		v, ok := rec.Fields.Number(key)
		if !ok {
			continue
		}
		if best < 0 || v > bestValue {
			best = i
			bestValue = v
		}
	}

	sel := Selection{Discarded: len(records) - 1}
	if best < 0 {
		sel.Record = records[0]
		sel.LowConfidence = true
		return sel, true
	}
	sel.Record = records[best]
	sel.Index = best
	return sel, true
}
