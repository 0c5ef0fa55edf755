package sim

import "time"

// Board bundles a complete simulated clock board.
type Board struct {
	Clock     *Clock
	Pin       *OutputPin
	Osc       *Oscillator
	Indicator *Indicator

	ADC    *ADC
	Halt   *Level
	Step   *Level
	Button *Level
}

// NewBoard returns a board at t=0 with all switches released and the control
// input at sample.
func NewBoard(refHz uint32, sample uint8) *Board {
	clk := NewClock()
	pin := NewOutputPin(clk, refHz)
	b := &Board{
		Clock:     clk,
		Pin:       pin,
		Osc:       NewOscillator(pin),
		Indicator: NewIndicator(clk),
		ADC:       &ADC{},
		Halt:      &Level{},
		Step:      &Level{},
		Button:    &Level{},
	}
	b.ADC.Set(sample)
	return b
}

// BounceStep is the spacing of simulated contact bounce. It sits just under
// the debounce tick so each tick reads a different bounce level.
const BounceStep = 1500 * time.Microsecond

// BounceSettle is how long a simulated edge bounces before holding level.
const BounceSettle = 6 * BounceStep

var (
	pressBounce   = []bool{true, false, true, false, true, false}
	releaseBounce = []bool{false, true, false, true, false, true}
)

// Press schedules a bouncy press of the step button at start, held for hold,
// followed by a bouncy release. Each edge bounces for BounceSettle; hold
// should be longer than that.
func (b *Board) Press(start, hold time.Duration) {
	Bounce(b.Clock, b.Button, start, BounceStep, pressBounce, true)
	Bounce(b.Clock, b.Button, start+hold, BounceStep, releaseBounce, false)
}

// HighTime sums the time the pin spent high between from and to, using the
// recorded trace. Only meaningful while the trace is not truncated.
func (b *Board) HighTime(from, to time.Duration) time.Duration {
	var total time.Duration
	level := false
	last := time.Duration(0)
	for _, e := range b.Pin.Trace() {
		if e.At > to {
			break
		}
		if level {
			total += clip(last, e.At, from, to)
		}
		level, last = e.Level, e.At
	}
	if level {
		total += clip(last, to, from, to)
	}
	return total
}

func clip(a, b, lo, hi time.Duration) time.Duration {
	if a < lo {
		a = lo
	}
	if b > hi {
		b = hi
	}
	if b <= a {
		return 0
	}
	return b - a
}
