package sim

import (
	"time"

	"clockgen-go/drivers/nco"
	"clockgen-go/x/timex"
)

// Source of an observed pin level.
type Source uint8

const (
	FromLatch Source = iota
	FromOscillator
)

// Edge is one observed transition of the clock pin.
type Edge struct {
	At    time.Duration
	Level bool
	From  Source
}

// DefaultTraceCap bounds the recorded edges; later edges are only counted.
const DefaultTraceCap = 1 << 14

// OutputPin models the clock pin behind a peripheral pin-select mux: either
// the GPIO latch or the NCO output drives it. It implements hw.Line for the
// latch, and Oscillator (from NewOscillator) drives the other mux input.
type OutputPin struct {
	clk   *Clock
	refHz uint32
	nco   *nco.Device

	latch     bool
	connected bool
	level     bool

	trace    []Edge
	traceCap int
	edges    uint64
	rising   uint64
}

// NewOutputPin attaches a pin and its NCO to clk. refHz clocks the NCO.
func NewOutputPin(clk *Clock, refHz uint32) *OutputPin {
	p := &OutputPin{clk: clk, refHz: refHz, nco: nco.New(), traceCap: DefaultTraceCap}
	clk.OnAdvance(p.advance)
	return p
}

// SetTraceCap changes how many edges are kept.
func (p *OutputPin) SetTraceCap(n int) { p.traceCap = n }

// Set drives the GPIO latch (hw.Line).
func (p *OutputPin) Set(level bool) {
	p.latch = level
	p.refresh()
}

// Level is the level observed on the pin right now.
func (p *OutputPin) Level() bool { return p.level }

// Connected reports whether the NCO drives the pin.
func (p *OutputPin) Connected() bool { return p.connected }

// NCO exposes the register model.
func (p *OutputPin) NCO() *nco.Device { return p.nco }

// Trace returns the recorded edges.
func (p *OutputPin) Trace() []Edge { return p.trace }

// Edges returns the total number of observed transitions and rising edges,
// including those beyond the trace cap.
func (p *OutputPin) Edges() (total, rising uint64) { return p.edges, p.rising }

// ResetTrace clears the recorded edges and counters.
func (p *OutputPin) ResetTrace() {
	p.trace = p.trace[:0]
	p.edges, p.rising = 0, 0
}

func (p *OutputPin) refresh() {
	lvl := p.latch
	src := FromLatch
	if p.connected {
		lvl = p.nco.Output()
		src = FromOscillator
	}
	p.observe(p.clk.Now(), lvl, src)
}

func (p *OutputPin) observe(at time.Duration, lvl bool, src Source) {
	if lvl == p.level {
		return
	}
	p.level = lvl
	p.edges++
	if lvl {
		p.rising++
	}
	if len(p.trace) < p.traceCap {
		p.trace = append(p.trace, Edge{At: at, Level: lvl, From: src})
	}
}

// advance clocks the NCO across (from, to]. Toggles are replayed one by one
// while they are still being traced, then in bulk.
func (p *OutputPin) advance(from, to time.Duration) {
	c0 := timex.DurationToCycles(from, p.refHz)
	c1 := timex.DurationToCycles(to, p.refHz)
	n := c1 - c0
	for n > 0 && p.nco.Enabled() {
		k := p.nco.CyclesToOverflow()
		if k > n {
			p.nco.Advance(n)
			return
		}
		if !p.connected || len(p.trace) >= p.traceCap {
			// Bulk: count toggles without materialising edges.
			t := p.nco.Advance(n)
			if p.connected {
				p.bulkEdges(t)
			}
			return
		}
		p.nco.Advance(k)
		n -= k
		c0 += k
		p.observe(timex.CyclesToDuration(c0, p.refHz), p.nco.Output(), FromOscillator)
	}
}

func (p *OutputPin) bulkEdges(toggles uint64) {
	if toggles == 0 {
		return
	}
	// Rising edges among the toggles depend on the starting level.
	r := toggles / 2
	if toggles%2 == 1 && !p.level {
		r++
	}
	p.edges += toggles
	p.rising += r
	p.level = p.nco.Output()
}

// Oscillator is the hw.Oscillator side of the pin mux.
type Oscillator struct{ p *OutputPin }

// NewOscillator returns the oscillator controls for p.
func NewOscillator(p *OutputPin) *Oscillator { return &Oscillator{p: p} }

func (o *Oscillator) SetIncrement(inc uint32) { o.p.nco.WriteIncrement(inc) }
func (o *Oscillator) Enable()                 { o.p.nco.Enable(); o.p.refresh() }
func (o *Oscillator) Disable()                { o.p.nco.Disable(); o.p.refresh() }
func (o *Oscillator) ConnectToPin()           { o.p.connected = true; o.p.refresh() }
func (o *Oscillator) DisconnectFromPin()      { o.p.connected = false; o.p.refresh() }
