package debounce

import (
	"testing"
	"time"

	"clockgen-go/internal/hw"
)

type rawSeq struct {
	vals []bool
	i    int
}

func (r *rawSeq) Get() bool {
	if r.i >= len(r.vals) {
		return r.vals[len(r.vals)-1]
	}
	v := r.vals[r.i]
	r.i++
	return v
}

type manualTicks struct {
	period time.Duration
	fn     func()
	stops  int
}

func (m *manualTicks) Every(p time.Duration, fn func()) func() {
	m.period, m.fn = p, fn
	return func() { m.stops++ }
}

func TestButtonLatchesOneRiseForBouncyPress(t *testing.T) {
	// seed, then bounce 0/1 noise settling high, then released with bounce.
	raw := &rawSeq{vals: []bool{
		false,
		true, false, true, false, true, true, true, true,
		false, true, false, false, false,
	}}
	b := NewButton(raw)
	rises := 0
	for i := 0; i < 13; i++ {
		b.Tick()
		if b.TakeRise() {
			rises++
		}
	}
	if rises != 1 {
		t.Fatalf("expected exactly one debounced rise, got %d", rises)
	}
	if b.Pressed() {
		t.Fatalf("button should read released after settling low")
	}
}

func TestButtonStartUsesTickSource(t *testing.T) {
	var lvl bool
	b := NewButton(hw.SwitchFunc(func() bool { return lvl }))
	ts := &manualTicks{}
	b.Start(ts, 0)
	if ts.period != DefaultTick {
		t.Fatalf("default period = %v", ts.period)
	}
	lvl = true
	ts.fn()
	ts.fn()
	if !b.Pressed() || !b.TakeRise() {
		t.Fatalf("two high ticks must press the button")
	}
	if b.TakeRise() {
		t.Fatalf("TakeRise must clear the latch")
	}
	b.Stop()
	b.Stop()
	if ts.stops != 1 {
		t.Fatalf("stop called %d times", ts.stops)
	}
}
