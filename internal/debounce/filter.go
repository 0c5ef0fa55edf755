// Package debounce turns a noisy mechanical contact into a clean logic level.
//
// The filter is a three-term majority vote clocked at a fixed rate: the raw
// sample, the raw sample from the previous tick, and the previous filter output.
// A glitch shorter than one tick can never outvote the two stable terms, and
// two consecutive identical raw samples always win.
package debounce

import "time"

// DefaultTick is the reference sampling period, (140+1)*64 cycles of a 6 MHz
// timer clock.
const DefaultTick = 1504 * time.Microsecond

// Filter holds the two bits of debounce state. Use NewFilter; the state must
// start at the current raw level.
type Filter struct {
	prevRaw bool
	stable  bool
}

// NewFilter returns a filter settled at level.
func NewFilter(level bool) Filter {
	return Filter{prevRaw: level, stable: level}
}

// Tick advances the filter by one sample period and returns the stable output.
func (f *Filter) Tick(raw bool) bool {
	f.stable = majority(raw, f.prevRaw, f.stable)
	f.prevRaw = raw
	return f.stable
}

// Stable returns the current filtered level.
func (f *Filter) Stable() bool { return f.stable }

func majority(a, b, c bool) bool {
	return (a && b) || (a && c) || (b && c)
}
