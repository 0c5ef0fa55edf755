package output

import (
	"testing"
	"time"

	"clockgen-go/internal/freqtable"
	"clockgen-go/internal/platform/sim"
)

const refHz = freqtable.RefHz

var (
	hw500  = freqtable.GenerationSpec{Strategy: freqtable.HardwareOscillator, Parameter: 500}
	hw1024 = freqtable.GenerationSpec{Strategy: freqtable.HardwareOscillator, Parameter: 1024}
	sw10ms = freqtable.GenerationSpec{Strategy: freqtable.SoftwareTimed, Parameter: 240_000}
	sw5ms  = freqtable.GenerationSpec{Strategy: freqtable.SoftwareTimed, Parameter: 120_000}
	sw1Hz  = freqtable.GenerationSpec{Strategy: freqtable.SoftwareTimed, Parameter: 12_000_000}
)

func newGen(t *testing.T) (*Generator, *sim.Board) {
	t.Helper()
	b := sim.NewBoard(refHz, 0)
	b.Pin.Set(true) // whatever the pin did before boot
	b.Osc.ConnectToPin()
	g := New(b.Pin, b.Osc, b.Clock, Timing{})
	return g, b
}

// edgesAfter returns recorded edges at or after t.
func edgesAfter(b *sim.Board, t time.Duration) []sim.Edge {
	var out []sim.Edge
	for _, e := range b.Pin.Trace() {
		if e.At >= t {
			out = append(out, e)
		}
	}
	return out
}

func TestNewParksTheOutput(t *testing.T) {
	g, b := newGen(t)
	if g.State() != Disconnected {
		t.Fatalf("state %v", g.State())
	}
	if b.Pin.Level() || b.Pin.Connected() || b.Pin.NCO().Enabled() {
		t.Fatalf("pin not parked: level=%v connected=%v", b.Pin.Level(), b.Pin.Connected())
	}
	s := g.Snapshot()
	if s.Enabled || s.Level || s.Source != SourceNone {
		t.Fatalf("snapshot %+v", s)
	}
}

func TestHardwareStartAndAtomicReconfigure(t *testing.T) {
	g, b := newGen(t)
	g.Apply(hw500)
	if g.State() != HardwareActive || !b.Pin.Connected() || !b.Pin.NCO().Enabled() {
		t.Fatalf("hardware not started: %+v", g.Snapshot())
	}
	b.Clock.Sleep(3 * time.Millisecond)
	g.Apply(hw1024)
	g.Apply(hw1024) // no-op
	if got := b.Pin.NCO().Increment(); got != 1024 {
		t.Fatalf("increment %d", got)
	}
	if b.Pin.NCO().TornWrites() != 0 {
		t.Fatalf("increment written while the NCO was running")
	}
	if st := g.Stats(); st.Reconfigs != 1 || st.Switches != 0 {
		t.Fatalf("stats %+v", st)
	}
}

func TestSwitchToSoftwareIsGlitchFree(t *testing.T) {
	g, b := newGen(t)
	g.Apply(hw1024)
	// Stop while the NCO output is high: 42.666 us per toggle, so at 60 us it is high.
	b.Clock.Sleep(60 * time.Microsecond)
	if !b.Pin.Level() {
		t.Fatalf("precondition: NCO output should be high")
	}
	at := b.Clock.Now()
	g.Apply(sw5ms)
	if b.Pin.Level() || b.Pin.Connected() {
		t.Fatalf("line must be low and disconnected right after the switch")
	}
	g.RunCycle(nil)
	ev := edgesAfter(b, at)
	if len(ev) < 2 || ev[0].Level || !ev[1].Level || ev[1].From != sim.FromLatch {
		t.Fatalf("expected low then software high after switch, got %+v", ev)
	}
	if g.Stats().Switches != 1 {
		t.Fatalf("stats %+v", g.Stats())
	}
}

func TestSwitchToHardwareIsGlitchFree(t *testing.T) {
	g, b := newGen(t)
	g.Apply(sw1Hz)
	polls := 0
	ok := g.RunCycle(func() bool {
		polls++
		return polls == 3 // abort ~20ms into the high phase
	})
	if ok {
		t.Fatalf("cycle should have been aborted")
	}
	at := b.Clock.Now()
	if b.Pin.Level() {
		t.Fatalf("aborted half-cycle must leave the line low")
	}
	g.Apply(hw1024)
	if b.Pin.Level() {
		t.Fatalf("line must be low when the NCO is connected")
	}
	b.Clock.Sleep(time.Millisecond)
	ev := edgesAfter(b, at+1) // skip the abort edge itself
	if len(ev) == 0 || !ev[0].Level || ev[0].From != sim.FromOscillator {
		t.Fatalf("first edge after the switch must be an NCO rising edge, got %+v", ev)
	}
	if ev[0].At-at < 42*time.Microsecond {
		t.Fatalf("first NCO edge after %v, expected a full low half-period", ev[0].At-at)
	}
}

func TestSoftwareCycleTiming(t *testing.T) {
	g, b := newGen(t)
	g.Apply(sw10ms)
	start := b.Clock.Now()
	if !g.RunCycle(nil) {
		t.Fatalf("cycle aborted")
	}
	if d := b.Clock.Now() - start; d != 20*time.Millisecond {
		t.Fatalf("period %v", d)
	}
	if ht := b.HighTime(start, start+20*time.Millisecond); ht != 10*time.Millisecond {
		t.Fatalf("high for %v, want 50%% duty", ht)
	}
	if st := g.Stats(); st.HalfCycles != 2 || st.Aborts != 0 {
		t.Fatalf("stats %+v", st)
	}
}

func TestSoftwareReconfigureWaitsForNextHalfCycle(t *testing.T) {
	g, b := newGen(t)
	g.Apply(sw10ms)
	start := b.Clock.Now()
	applied := false
	g.RunCycle(func() bool {
		if !applied && b.Clock.Now() > start {
			g.Apply(sw5ms)
			applied = true
		}
		return false
	})
	// High phase ran the old 10ms, low phase the new 5ms.
	if d := b.Clock.Now() - start; d != 15*time.Millisecond {
		t.Fatalf("cycle took %v, want 15ms", d)
	}
	if ht := b.HighTime(start, b.Clock.Now()); ht != 10*time.Millisecond {
		t.Fatalf("high for %v", ht)
	}
	if g.Spec() != sw5ms {
		t.Fatalf("spec %+v", g.Spec())
	}
}

func TestLongHalfPeriodReactsWithinCheckInterval(t *testing.T) {
	g, b := newGen(t)
	g.Apply(sw1Hz)
	b.Clock.At(123*time.Millisecond, func() { b.Halt.Set(true) })
	if g.RunCycle(b.Halt.Get) {
		t.Fatalf("cycle should abort on the mode change")
	}
	lat := b.Clock.Now() - 123*time.Millisecond
	if lat < 0 || lat > DefaultCheckInterval {
		t.Fatalf("reaction latency %v exceeds %v", lat, DefaultCheckInterval)
	}
	if b.Pin.Level() {
		t.Fatalf("line left high after abort")
	}
}

func TestHaltSilencesEveryStrategy(t *testing.T) {
	for _, spec := range []freqtable.GenerationSpec{hw1024, sw5ms} {
		g, b := newGen(t)
		g.Apply(spec)
		if spec.Strategy == freqtable.SoftwareTimed {
			polls := 0
			g.RunCycle(func() bool { polls++; return polls == 1 && b.Pin.Level() })
		} else {
			b.Clock.Sleep(60 * time.Microsecond)
		}
		g.Halt()
		at := b.Clock.Now()
		b.Clock.Sleep(100 * time.Millisecond)
		if b.Pin.Level() || b.Pin.Connected() || b.Pin.NCO().Enabled() {
			t.Fatalf("%v: output not silenced", spec.Strategy)
		}
		for _, e := range edgesAfter(b, at) {
			if e.Level {
				t.Fatalf("%v: rising edge at %v while halted", spec.Strategy, e.At)
			}
		}
		if g.RunCycle(nil) {
			t.Fatalf("RunCycle must not run while halted")
		}
		if s := g.Snapshot(); s.Enabled || s.Level || s.State != Halted {
			t.Fatalf("snapshot %+v", s)
		}
	}
}

func TestPulseOnlyWhileHalted(t *testing.T) {
	g, b := newGen(t)
	if g.Pulse(10 * time.Millisecond) {
		t.Fatalf("pulse accepted while not halted")
	}
	g.Halt()
	start := b.Clock.Now()
	if !g.Pulse(10 * time.Millisecond) {
		t.Fatalf("pulse refused while halted")
	}
	if ht := b.HighTime(start, b.Clock.Now()+time.Millisecond); ht != 10*time.Millisecond {
		t.Fatalf("pulse width %v", ht)
	}
	if s := g.Snapshot(); s.Enabled || s.Level {
		t.Fatalf("pulse left the output enabled: %+v", s)
	}
}

func TestResumeAfterHaltReconnects(t *testing.T) {
	g, b := newGen(t)
	g.Apply(hw500)
	g.Halt()
	g.Resume(hw1024)
	if g.State() != HardwareActive || !b.Pin.Connected() || b.Pin.NCO().Increment() != 1024 {
		t.Fatalf("resume did not reconnect: %+v", g.Snapshot())
	}
	g.Halt()
	g.Resume(sw5ms)
	if g.State() != SoftwareActive || b.Pin.Connected() {
		t.Fatalf("resume into software left the NCO connected")
	}
}
