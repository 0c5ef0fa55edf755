// Package hw defines the narrow hardware boundary the clock engine is written
// against. Platform code (internal/platform) supplies implementations for the
// RP2 family and for host simulation.
package hw

import (
	"time"

	"tinygo.org/x/drivers"
)

// ---- Output side ----

// Line is the physical clock output when it is routed to the GPIO latch.
// It is write-only: the engine never reads back the pin.
type Line interface {
	Set(level bool)
}

// Oscillator is the free-running hardware generator. The increment must only
// be written while the oscillator is disabled; callers own that sequencing.
type Oscillator interface {
	SetIncrement(inc uint32)
	Enable()
	Disable()
	// ConnectToPin routes the oscillator output to the clock pin.
	ConnectToPin()
	// DisconnectFromPin returns the clock pin to the GPIO latch.
	DisconnectFromPin()
}

// Indicator is the status LED.
type Indicator interface {
	Set(on bool)
}

// ---- Input side ----

// Switch reads one digital input as a logical level: true means asserted,
// after any active-low inversion the platform applies.
type Switch interface {
	Get() bool
}

// ControlInput reads the analog control as an 8-bit sample. Reads block until
// the conversion completes.
type ControlInput interface {
	Sample() uint8
}

// ---- Time ----

// Clock is the single timebase of the control loop.
type Clock interface {
	// Now is the monotonic time since boot.
	Now() time.Duration
	// Sleep blocks for d. The control loop only ever asks for short sleeps.
	Sleep(d time.Duration)
}

// TickSource invokes fn at a fixed period until stop is called. On hardware the
// callback runs from a timer; in simulation it runs inside Clock.Sleep.
type TickSource interface {
	Every(period time.Duration, fn func()) (stop func())
}

// ---- Platform plumbing ----

// Pull selects the input bias of a GPIO pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is one configurable digital pin.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// PinFactory supplies GPIO pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// I2CBusFactory injects configured I²C instances by id.
type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// Inverted adapts an active-low input into a logical Switch.
type Inverted struct{ Pin GPIOPin }

// Get reports true while the pin is low.
func (s Inverted) Get() bool { return !s.Pin.Get() }

// SwitchFunc adapts a plain function into a Switch.
type SwitchFunc func() bool

// Get calls f.
func (f SwitchFunc) Get() bool { return f() }

// LineFunc adapts a plain function into a Line or Indicator.
type LineFunc func(level bool)

// Set calls f with level.
func (f LineFunc) Set(level bool) { f(level) }
