package freqtable

import "clockgen-go/x/mathx"

// Deadband is the largest sample movement treated as ADC noise.
const Deadband = 1

// Selector applies the deadband in front of a table lookup.
type Selector struct {
	table *Table
}

// NewSelector returns a selector over t; nil selects the built-in table.
func NewSelector(t *Table) Selector {
	if t == nil {
		t = Default()
	}
	return Selector{table: t}
}

// Select returns the entry for sample when it moved more than Deadband away
// from the last accepted sample; otherwise ok is false and the caller keeps
// its current output.
func (s Selector) Select(sample, previous uint8) (spec GenerationSpec, ok bool) {
	if mathx.AbsDiff(sample, previous) <= Deadband {
		return GenerationSpec{}, false
	}
	return s.table.Lookup(sample), true
}

// Lookup bypasses the deadband. Used when the entry must be re-derived from
// scratch, e.g. at boot or when returning to RUN.
func (s Selector) Lookup(sample uint8) GenerationSpec { return s.table.Lookup(sample) }

// Table exposes the underlying table.
func (s Selector) Table() *Table { return s.table }
