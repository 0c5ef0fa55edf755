package debounce

import (
	"sync/atomic"
	"time"

	"clockgen-go/internal/hw"
)

// Button runs a Filter over a raw input from a periodic tick and latches
// debounced rising edges for the control loop to consume.
type Button struct {
	raw hw.Switch
	f   Filter

	level atomic.Bool
	rose  atomic.Bool
	stop  func()
}

// NewButton samples raw once to seed the filter.
func NewButton(raw hw.Switch) *Button {
	lvl := raw.Get()
	b := &Button{raw: raw, f: NewFilter(lvl)}
	b.level.Store(lvl)
	return b
}

// Start ticks the filter from ts every period. period <= 0 uses DefaultTick.
func (b *Button) Start(ts hw.TickSource, period time.Duration) {
	if period <= 0 {
		period = DefaultTick
	}
	b.Stop()
	b.stop = ts.Every(period, b.Tick)
}

// Stop detaches the button from its tick source.
func (b *Button) Stop() {
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
}

// Tick samples the raw input once. It is the tick callback and is also usable
// directly when the caller owns the sampling rate.
func (b *Button) Tick() {
	was := b.f.Stable()
	now := b.f.Tick(b.raw.Get())
	b.level.Store(now)
	if now && !was {
		b.rose.Store(true)
	}
}

// Pressed returns the debounced level.
func (b *Button) Pressed() bool { return b.level.Load() }

// TakeRise reports whether a debounced rising edge occurred since the last
// call, and clears it.
func (b *Button) TakeRise() bool { return b.rose.Swap(false) }
