package sim

import "time"

// Level is a settable digital input (hw.Switch).
type Level struct{ v bool }

func (l *Level) Get() bool    { return l.v }
func (l *Level) Set(v bool)   { l.v = v }
func (l *Level) Toggle() bool { l.v = !l.v; return l.v }

// ADC is a settable 8-bit control input (hw.ControlInput).
type ADC struct {
	v     uint8
	reads uint64
}

func (a *ADC) Sample() uint8 { a.reads++; return a.v }
func (a *ADC) Set(v uint8)   { a.v = v }
func (a *ADC) Value() uint8  { return a.v }

// Reads counts conversions requested by the firmware.
func (a *ADC) Reads() uint64 { return a.reads }

// Indicator records LED transitions (hw.Indicator).
type Indicator struct {
	clk     *Clock
	on      bool
	changes []Edge
}

func NewIndicator(clk *Clock) *Indicator { return &Indicator{clk: clk} }

func (i *Indicator) Set(on bool) {
	if on == i.on && len(i.changes) > 0 {
		return
	}
	i.on = on
	i.changes = append(i.changes, Edge{At: i.clk.Now(), Level: on})
}

func (i *Indicator) On() bool        { return i.on }
func (i *Indicator) Changes() []Edge { return i.changes }

// Bounce schedules levels on l starting at start, one every step, ending with
// final held. It models contact bounce on a mechanical switch.
func Bounce(clk *Clock, l *Level, start, step time.Duration, pattern []bool, final bool) {
	at := start
	for _, v := range pattern {
		v := v
		clk.At(at, func() { l.Set(v) })
		at += step
	}
	clk.At(at, func() { l.Set(final) })
}
