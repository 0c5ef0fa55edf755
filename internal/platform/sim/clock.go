// Package sim is a deterministic host model of the clock board: a virtual
// timebase, the NCO routed through a pin mux, and scriptable inputs. Virtual
// time only advances inside Clock.Sleep, so the control loop under test sees
// exactly the timing it asks for.
package sim

import (
	"container/heap"
	"time"
)

// Clock is a virtual monotonic clock. It implements hw.Clock and hw.TickSource.
type Clock struct {
	now   time.Duration
	seq   uint64
	q     eventQueue
	hooks []func(from, to time.Duration)

	sleeps uint64
	slept  time.Duration
}

type event struct {
	at     time.Duration
	seq    uint64
	period time.Duration // 0 = one-shot
	fn     func()
	dead   bool
	index  int
}

type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i]; q[i].index = i; q[j].index = j }
func (q *eventQueue) Push(x any)   { e := x.(*event); e.index = len(*q); *q = append(*q, e) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	e.index = -1
	*q = old[:n-1]
	return e
}

func NewClock() *Clock { return &Clock{} }

func (c *Clock) Now() time.Duration { return c.now }

// Sleep advances virtual time by d, firing due events in time order.
func (c *Clock) Sleep(d time.Duration) {
	c.sleeps++
	if d <= 0 {
		return
	}
	c.slept += d
	c.AdvanceTo(c.now + d)
}

// AdvanceTo runs the model up to t. Events scheduled exactly at t fire.
func (c *Clock) AdvanceTo(t time.Duration) {
	for len(c.q) > 0 && c.q[0].at <= t {
		e := heap.Pop(&c.q).(*event)
		if e.dead {
			continue
		}
		c.advance(e.at)
		if e.period > 0 {
			e.at += e.period
			c.seq++
			e.seq = c.seq
			heap.Push(&c.q, e)
		}
		e.fn()
	}
	c.advance(t)
}

func (c *Clock) advance(t time.Duration) {
	if t <= c.now {
		return
	}
	from := c.now
	c.now = t
	for _, h := range c.hooks {
		h(from, t)
	}
}

// Every implements hw.TickSource. The first call happens one period from now.
func (c *Clock) Every(period time.Duration, fn func()) (stop func()) {
	e := c.schedule(c.now+period, period, fn)
	return func() { e.dead = true }
}

// At runs fn once when virtual time reaches t.
func (c *Clock) At(t time.Duration, fn func()) {
	if t < c.now {
		t = c.now
	}
	c.schedule(t, 0, fn)
}

// After runs fn once, d from now.
func (c *Clock) After(d time.Duration, fn func()) { c.At(c.now+d, fn) }

func (c *Clock) schedule(at, period time.Duration, fn func()) *event {
	c.seq++
	e := &event{at: at, seq: c.seq, period: period, fn: fn}
	heap.Push(&c.q, e)
	return e
}

// OnAdvance registers a hook called whenever time moves forward, before any
// event due at the new time fires.
func (c *Clock) OnAdvance(h func(from, to time.Duration)) { c.hooks = append(c.hooks, h) }

// Sleeps returns how many Sleep calls were made and their total duration.
func (c *Clock) Sleeps() (n uint64, total time.Duration) { return c.sleeps, c.slept }
