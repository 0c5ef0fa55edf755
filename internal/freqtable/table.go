// Package freqtable maps the 8-bit control sample to a generation spec.
//
// The table is build-time data (see table_gen.go, produced by cmd/gentable).
// Every entry carries exactly one strategy and a non-zero parameter; Validate
// enforces that for tables supplied from elsewhere.
package freqtable

//go:generate go run ../../cmd/gentable -o table_gen.go

import (
	"strconv"
	"time"

	"clockgen-go/drivers/nco"
	"clockgen-go/errcode"
	"clockgen-go/x/timex"
)

// RefHz is the reference clock the table is computed for: NCO increments are
// relative to it and software half-periods are counted in its cycles.
const RefHz = 24_000_000

// Strategy selects how the output is generated.
type Strategy uint8

const (
	// HardwareOscillator hands timing to the NCO. Parameter is the 20-bit increment.
	HardwareOscillator Strategy = iota
	// SoftwareTimed toggles the line from the control loop. Parameter is the
	// half-period in reference-clock cycles.
	SoftwareTimed
)

func (s Strategy) String() string {
	switch s {
	case HardwareOscillator:
		return "hardware"
	case SoftwareTimed:
		return "software"
	default:
		return "strategy(" + strconv.Itoa(int(s)) + ")"
	}
}

// GenerationSpec is one table entry.
type GenerationSpec struct {
	Strategy  Strategy
	Parameter uint32
}

// FrequencyMilliHz is the nominal output frequency of the entry in mHz.
func (g GenerationSpec) FrequencyMilliHz() uint64 {
	switch g.Strategy {
	case HardwareOscillator:
		return nco.FrequencyMilliHz(RefHz, g.Parameter)
	case SoftwareTimed:
		if g.Parameter == 0 {
			return 0
		}
		return uint64(RefHz) * 1000 / (2 * uint64(g.Parameter))
	}
	return 0
}

// Table is indexed by control sample.
type Table [256]GenerationSpec

// Default returns a copy of the built-in table.
func Default() *Table {
	t := defaultTable
	return &t
}

// Lookup is total: every sample value is a valid index.
func (t *Table) Lookup(sample uint8) GenerationSpec { return t[sample] }

// Validate checks the construction invariants: known strategy, non-zero
// parameter, increments within 20 bits, and software half-periods no shorter
// than one polling slice.
func (t *Table) Validate(slice uint32) error {
	for i := range t {
		e := t[i]
		idx := strconv.Itoa(i)
		if e.Parameter == 0 {
			return errcode.New(errcode.ZeroParameter, "freqtable.Validate", "entry "+idx)
		}
		switch e.Strategy {
		case HardwareOscillator:
			if e.Parameter > nco.MaxIncrement {
				return errcode.New(errcode.IncrementOver, "freqtable.Validate", "entry "+idx)
			}
		case SoftwareTimed:
			if e.Parameter < slice {
				return errcode.New(errcode.InvalidTable, "freqtable.Validate", "entry "+idx+" shorter than one slice")
			}
		default:
			return errcode.New(errcode.InvalidTable, "freqtable.Validate", "entry "+idx+" has "+e.Strategy.String())
		}
	}
	return nil
}

// HalfPeriod converts a software half-period in reference cycles to a duration.
func HalfPeriod(cycles uint32) time.Duration {
	return timex.CyclesToDuration(uint64(cycles), RefHz)
}
