// Package output owns the clock output pin and both generation strategies.
//
// Nothing else writes the line or the oscillator registers; every strategy
// change passes through a forced-low line so no partial pulse is emitted.
package output

import (
	"time"

	"clockgen-go/internal/freqtable"
	"clockgen-go/internal/hw"
)

// State of the generator.
type State uint8

const (
	Disconnected State = iota
	HardwareActive
	SoftwareActive
	Halted
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case HardwareActive:
		return "hardware"
	case SoftwareActive:
		return "software"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// Source is what currently drives the pin.
type Source uint8

const (
	SourceNone Source = iota
	SourceOscillator
	SourceSoftware
)

// Snapshot is the generator's view of the output.
type Snapshot struct {
	State   State
	Source  Source
	Enabled bool
	// Level is the GPIO latch level. When Enabled is false it is always low.
	Level bool
	Spec  freqtable.GenerationSpec
}

// Stats counts transitions since construction.
type Stats struct {
	Switches   uint32 // cross-strategy transitions
	Reconfigs  uint32 // same-strategy parameter changes
	HalfCycles uint32 // completed software half-cycles
	Aborts     uint32 // software half-cycles cut short
	Pulses     uint32 // manual step pulses
}

// Watch is polled at every check point of a software half-cycle. Returning
// true aborts the half-cycle: the line is driven low and RunCycle returns.
type Watch func() bool

// Timing bounds the software strategy's reaction latency.
type Timing struct {
	// CheckInterval is the wall time between Watch polls while waiting.
	CheckInterval time.Duration
}

// DefaultCheckInterval is 1024 slices of 10 us.
const DefaultCheckInterval = 1024 * 10 * time.Microsecond

// Generator drives the output with one strategy at a time.
type Generator struct {
	line hw.Line
	osc  hw.Oscillator
	clk  hw.Clock
	tm   Timing

	state   State
	src     Source
	enabled bool
	level   bool
	spec    freqtable.GenerationSpec
	pending uint32 // next software half-period, 0 = none
	stats   Stats
}

// New takes ownership of the line and oscillator and parks them: oscillator
// disabled and disconnected, line driven low.
func New(line hw.Line, osc hw.Oscillator, clk hw.Clock, tm Timing) *Generator {
	if tm.CheckInterval <= 0 {
		tm.CheckInterval = DefaultCheckInterval
	}
	g := &Generator{line: line, osc: osc, clk: clk, tm: tm}
	g.drive(false)
	g.osc.Disable()
	g.osc.DisconnectFromPin()
	return g
}

// Snapshot reports the current output state.
func (g *Generator) Snapshot() Snapshot {
	return Snapshot{State: g.state, Source: g.src, Enabled: g.enabled, Level: g.level, Spec: g.spec}
}

// State returns the current generator state.
func (g *Generator) State() State { return g.state }

// Stats returns the transition counters.
func (g *Generator) Stats() Stats { return g.stats }

// Spec is the table entry currently generated, including a software period that is
// still pending for the next half-cycle.
func (g *Generator) Spec() freqtable.GenerationSpec {
	if g.pending != 0 {
		return freqtable.GenerationSpec{Strategy: freqtable.SoftwareTimed, Parameter: g.pending}
	}
	return g.spec
}

// Apply makes spec the generated output, choosing the transition from the
// current state.
func (g *Generator) Apply(spec freqtable.GenerationSpec) {
	switch g.state {
	case Disconnected, Halted:
		g.Resume(spec)
	case HardwareActive:
		if spec.Strategy == freqtable.HardwareOscillator {
			g.reconfigureHardware(spec)
		} else {
			g.switchToSoftware(spec)
		}
	case SoftwareActive:
		if spec.Strategy == freqtable.SoftwareTimed {
			g.reconfigureSoftware(spec)
		} else {
			g.switchToHardware(spec)
		}
	}
}

// Halt silences the output from any state: the oscillator is stopped and
// disconnected and the line is held low.
func (g *Generator) Halt() {
	if g.state == Halted {
		return
	}
	g.drive(false)
	if g.src == SourceOscillator {
		g.osc.Disable()
		g.osc.DisconnectFromPin()
	}
	g.src = SourceNone
	g.enabled = false
	g.pending = 0
	g.state = Halted
}

// Resume leaves Halted (or the initial Disconnected state) with a freshly
// derived spec.
func (g *Generator) Resume(spec freqtable.GenerationSpec) {
	g.drive(false)
	if g.src == SourceOscillator {
		g.osc.Disable()
		g.osc.DisconnectFromPin()
	}
	g.pending = 0
	switch spec.Strategy {
	case freqtable.HardwareOscillator:
		g.startHardware(spec)
	default:
		g.startSoftware(spec)
	}
}

// Pulse emits one high pulse of width on the line. Only valid while halted;
// the oscillator is disconnected so it cannot interleave with the pulse.
func (g *Generator) Pulse(width time.Duration) bool {
	if g.state != Halted {
		return false
	}
	g.src, g.enabled = SourceSoftware, true
	g.drive(true)
	g.clk.Sleep(width)
	g.drive(false)
	g.src, g.enabled = SourceNone, false
	g.stats.Pulses++
	return true
}

// ---- hardware strategy ----

func (g *Generator) startHardware(spec freqtable.GenerationSpec) {
	g.osc.Disable()
	g.osc.SetIncrement(spec.Parameter)
	g.osc.ConnectToPin()
	g.osc.Enable()
	g.src = SourceOscillator
	g.enabled = true
	g.spec = spec
	g.state = HardwareActive
}

// reconfigureHardware writes the increment with the oscillator stopped so it
// never steps with a half-written value.
func (g *Generator) reconfigureHardware(spec freqtable.GenerationSpec) {
	if spec == g.spec {
		return
	}
	g.osc.Disable()
	g.osc.SetIncrement(spec.Parameter)
	g.osc.Enable()
	g.spec = spec
	g.stats.Reconfigs++
}

func (g *Generator) switchToSoftware(spec freqtable.GenerationSpec) {
	g.drive(false)
	g.osc.Disable()
	g.osc.DisconnectFromPin()
	g.stats.Switches++
	g.startSoftware(spec)
}

// ---- software strategy ----

func (g *Generator) startSoftware(spec freqtable.GenerationSpec) {
	g.src = SourceSoftware
	g.enabled = true
	g.spec = spec
	g.state = SoftwareActive
}

// reconfigureSoftware latches the new half-period; the half-cycle in progress
// finishes with the old one.
func (g *Generator) reconfigureSoftware(spec freqtable.GenerationSpec) {
	if spec == g.spec {
		g.pending = 0
		return
	}
	g.pending = spec.Parameter
}

func (g *Generator) switchToHardware(spec freqtable.GenerationSpec) {
	g.drive(false)
	g.pending = 0
	g.stats.Switches++
	g.startHardware(spec)
}

// RunCycle generates one full software period: high for a half-period, then
// low for a half-period. It returns false if watch cut it short, in which case
// the line has been driven low. Outside SoftwareActive it returns false at once.
func (g *Generator) RunCycle(watch Watch) bool {
	if g.state != SoftwareActive {
		return false
	}
	start := g.clk.Now()
	deadline := start
	for _, lvl := range [2]bool{true, false} {
		g.takePending()
		g.drive(lvl)
		deadline += freqtable.HalfPeriod(g.spec.Parameter)
		if !g.wait(deadline, watch) {
			g.drive(false)
			g.stats.Aborts++
			return false
		}
		g.stats.HalfCycles++
	}
	return true
}

func (g *Generator) takePending() {
	if g.pending == 0 {
		return
	}
	if g.pending != g.spec.Parameter {
		g.stats.Reconfigs++
	}
	g.spec.Parameter = g.pending
	g.pending = 0
}

// wait sleeps until deadline in CheckInterval slices, polling watch before
// each slice. Returns false if watch asked to stop or the state changed.
func (g *Generator) wait(deadline time.Duration, watch Watch) bool {
	for {
		if watch != nil && watch() {
			return false
		}
		if g.state != SoftwareActive {
			return false
		}
		rem := deadline - g.clk.Now()
		if rem <= 0 {
			return true
		}
		if rem > g.tm.CheckInterval {
			rem = g.tm.CheckInterval
		}
		g.clk.Sleep(rem)
	}
}

func (g *Generator) drive(level bool) {
	g.level = level
	g.line.Set(level)
}
