// Package control runs the RUN/HALT/STEP state machine that drives the output
// generator from the mode switches, the step button and the control input.
package control

import (
	"context"
	"time"

	"clockgen-go/internal/debounce"
	"clockgen-go/internal/freqtable"
	"clockgen-go/internal/hw"
	"clockgen-go/internal/output"
)

// Mode is the operating mode selected by the two switches.
type Mode uint8

const (
	Run Mode = iota
	Halt
	Step
)

func (m Mode) String() string {
	switch m {
	case Run:
		return "run"
	case Halt:
		return "halt"
	case Step:
		return "step"
	default:
		return "unknown"
	}
}

// ModeOf resolves the two select switches. HALT wins when both are asserted.
func ModeOf(halt, step bool) Mode {
	switch {
	case halt:
		return Halt
	case step:
		return Step
	}
	return Run
}

// Inputs are the logical (already polarity-corrected) inputs of the loop.
type Inputs struct {
	Halt    hw.Switch
	Step    hw.Switch
	Control hw.ControlInput
}

// Timing holds the loop's fixed delays.
type Timing struct {
	HaltPoll      time.Duration // coarse poll while halted
	StepPoll      time.Duration // button poll and release wait slice
	PulseWidth    time.Duration // manual step pulse
	ReleaseSettle time.Duration // after the button is released
	HardwarePoll  time.Duration // input poll while the oscillator runs
	Blink         time.Duration // startup indicator blink phase
}

// DefaultTiming returns the reference delays.
func DefaultTiming() Timing {
	return Timing{
		HaltPoll:      50 * time.Millisecond,
		StepPoll:      10 * time.Millisecond,
		PulseWidth:    10 * time.Millisecond,
		ReleaseSettle: 20 * time.Millisecond,
		HardwarePoll:  20 * time.Millisecond,
		Blink:         100 * time.Millisecond,
	}
}

func (t Timing) withDefaults() Timing {
	d := DefaultTiming()
	if t.HaltPoll <= 0 {
		t.HaltPoll = d.HaltPoll
	}
	if t.StepPoll <= 0 {
		t.StepPoll = d.StepPoll
	}
	if t.PulseWidth <= 0 {
		t.PulseWidth = d.PulseWidth
	}
	if t.ReleaseSettle <= 0 {
		t.ReleaseSettle = d.ReleaseSettle
	}
	if t.HardwarePoll <= 0 {
		t.HardwarePoll = d.HardwarePoll
	}
	if t.Blink <= 0 {
		t.Blink = d.Blink
	}
	return t
}

// Status is what the controller reports on every mode or frequency change.
type Status struct {
	At     time.Duration
	Mode   Mode
	Sample uint8
	Spec   freqtable.GenerationSpec
	Output output.Snapshot
	Stats  output.Stats
}

// Config tunes a Controller. The zero value uses DefaultTiming and the
// built-in table.
type Config struct {
	Timing Timing
	// Table overrides the built-in frequency table.
	Table *freqtable.Table
	// OnChange is called from the control loop after every mode transition and
	// every accepted change of the control sample. It must not block.
	OnChange func(Status)
}

// Controller owns the control loop. All methods must be called from the loop's
// goroutine.
type Controller struct {
	gen *output.Generator
	sel freqtable.Selector
	btn *debounce.Button
	in  Inputs
	ind hw.Indicator
	clk hw.Clock
	tm  Timing

	onChange func(Status)

	mode   Mode
	sample uint8 // last accepted control sample

	deferred    freqtable.GenerationSpec
	hasDeferred bool
}

// New wires a controller. Call Boot or Run before Iterate.
func New(gen *output.Generator, btn *debounce.Button, in Inputs, ind hw.Indicator, clk hw.Clock, cfg Config) *Controller {
	return &Controller{
		gen:      gen,
		sel:      freqtable.NewSelector(cfg.Table),
		btn:      btn,
		in:       in,
		ind:      ind,
		clk:      clk,
		tm:       cfg.Timing.withDefaults(),
		onChange: cfg.OnChange,
	}
}

// Mode returns the current operating mode.
func (c *Controller) Mode() Mode { return c.mode }

// Status snapshots the loop and the generator.
func (c *Controller) Status() Status {
	return Status{
		At:     c.clk.Now(),
		Mode:   c.mode,
		Sample: c.sample,
		Spec:   c.gen.Spec(),
		Output: c.gen.Snapshot(),
		Stats:  c.gen.Stats(),
	}
}

// Run boots the output and loops until ctx is cancelled. On return the output
// is halted and the indicator is off.
func (c *Controller) Run(ctx context.Context) error {
	c.Boot()
	for ctx.Err() == nil {
		c.Iterate()
	}
	c.gen.Halt()
	c.ind.Set(false)
	println("[clock] stopped")
	return ctx.Err()
}

// Boot blinks the indicator and starts the output from the first control
// sample, in RUN.
func (c *Controller) Boot() {
	c.ind.Set(true)
	c.clk.Sleep(c.tm.Blink)
	c.ind.Set(false)
	c.clk.Sleep(c.tm.Blink)
	c.ind.Set(true)

	c.mode = Run
	c.sample = c.in.Control.Sample()
	spec := c.sel.Lookup(c.sample)
	c.gen.Resume(spec)
	println("[clock] boot sample", c.sample, spec.Strategy.String(), spec.Parameter)
	c.notify()
}

// Iterate runs one pass of the loop: evaluate the mode, act on the output,
// then take the next input sample.
func (c *Controller) Iterate() {
	if m := c.readMode(); m != c.mode {
		c.enter(m)
	}
	switch c.mode {
	case Halt:
		c.clk.Sleep(c.tm.HaltPoll)
	case Step:
		c.stepOnce()
	default:
		c.runOnce()
	}
}

func (c *Controller) readMode() Mode {
	return ModeOf(c.in.Halt.Get(), c.in.Step.Get())
}

func (c *Controller) enter(m Mode) {
	println("[clock] mode", c.mode.String(), "->", m.String())
	c.mode = m
	c.hasDeferred = false
	switch m {
	case Halt:
		c.gen.Halt()
		c.ind.Set(false)
	case Step:
		c.gen.Halt()
		c.ind.Set(true)
		// Presses seen before STEP was selected do not count.
		c.btn.TakeRise()
	case Run:
		c.sample = c.in.Control.Sample()
		c.gen.Resume(c.sel.Lookup(c.sample))
		c.ind.Set(true)
	}
	c.notify()
}

// ---- RUN ----

func (c *Controller) runOnce() {
	switch c.gen.State() {
	case output.SoftwareActive:
		c.gen.RunCycle(c.watch)
		if c.hasDeferred {
			c.hasDeferred = false
			c.gen.Apply(c.deferred)
			c.notify()
		}
	case output.HardwareActive:
		c.clk.Sleep(c.tm.HardwarePoll)
		if spec, ok := c.resample(); ok {
			c.gen.Apply(spec)
			c.notify()
		}
	default:
		c.gen.Resume(c.sel.Lookup(c.sample))
	}
}

// watch is the software wave's check point. A new software period is latched
// for the next half-cycle; a mode change or a switch to the oscillator cuts
// the half-cycle short.
func (c *Controller) watch() bool {
	if c.readMode() != Run {
		return true
	}
	spec, ok := c.resample()
	if !ok {
		return false
	}
	if spec.Strategy == freqtable.SoftwareTimed {
		c.gen.Apply(spec)
		c.notify()
		return false
	}
	c.deferred, c.hasDeferred = spec, true
	return true
}

func (c *Controller) resample() (freqtable.GenerationSpec, bool) {
	s := c.in.Control.Sample()
	spec, ok := c.sel.Select(s, c.sample)
	if ok {
		c.sample = s
	}
	return spec, ok
}

// ---- STEP ----

func (c *Controller) stepOnce() {
	if c.btn.TakeRise() {
		c.gen.Pulse(c.tm.PulseWidth)
		if !c.waitRelease() {
			return
		}
		c.clk.Sleep(c.tm.ReleaseSettle)
		c.btn.TakeRise()
	}
	c.clk.Sleep(c.tm.StepPoll)
}

// waitRelease blocks while the button is held. It returns false as soon as
// STEP is deselected, leaving the next mode to the following Iterate.
func (c *Controller) waitRelease() bool {
	for c.btn.Pressed() {
		if c.readMode() != Step {
			return false
		}
		c.clk.Sleep(c.tm.StepPoll)
	}
	return true
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.Status())
	}
}
