//go:build rp2040 || rp2350

package platform

import (
	"machine"
	"sync"
	"time"

	"tinygo.org/x/drivers"

	"clockgen-go/drivers/nco"
	"clockgen-go/errcode"
	"clockgen-go/internal/hw"
	"clockgen-go/types"
)

// Build claims the configured pins and peripherals of an RP2 board.
func Build(cfg types.ClockConfig) (*Hardware, error) {
	reg := NewRegistry(rp2PinFactory{})

	sw, err := claimSwitches(reg, cfg.Pins)
	if err != nil {
		return nil, err
	}
	line, err := claimOutput(reg, "output", cfg.Pins.Output)
	if err != nil {
		return nil, err
	}
	osc, err := newPWMOscillator(machine.Pin(cfg.Pins.Output), cfg.RefHz)
	if err != nil {
		return nil, err
	}
	led, err := claimOutput(reg, "indicator", cfg.Pins.Indicator)
	if err != nil {
		return nil, err
	}
	if err := claimControlPins(reg, cfg.Control); err != nil {
		return nil, err
	}
	ctl, err := controlInput(cfg.Control)
	if err != nil {
		return nil, err
	}
	var link LinkDialer
	if cfg.Bridge != nil {
		if err := claimLinkPins(reg, cfg.Bridge); err != nil {
			return nil, err
		}
		link = dialUART
	}
	clk := rp2Clock{start: time.Now()}
	return &Hardware{
		Line:      line,
		Osc:       osc,
		Indicator: led,
		Halt:      sw.halt,
		Step:      sw.step,
		Button:    sw.button,
		Control:   ctl,
		Clock:     clk,
		Ticks:     clk,
		Link:      link,
	}, nil
}

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (hw.GPIOPin, bool) {
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull hw.Pull) error {
	mode := machine.PinInput
	switch pull {
	case hw.PullUp:
		mode = machine.PinInputPullup
	case hw.PullDown:
		mode = machine.PinInputPulldown
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- Oscillator on a PWM slice ----

// Local interface to avoid depending on an unexported concrete type in machine.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmBySlice(slice uint8) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// pwmOscillator stands in for the NCO: the increment is converted to the
// period the NCO would produce and the slice runs at 50% duty. The pin mux is
// the GPIO function select. Disabled means zero duty, so the output is low.
type pwmOscillator struct {
	pin   machine.Pin
	ctrl  pwmCtrl
	ch    uint8
	refHz uint32
	inc   uint32
}

func newPWMOscillator(pin machine.Pin, refHz uint32) (*pwmOscillator, error) {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil, errcode.Wrap(errcode.Unsupported, "platform.pwm", err)
	}
	o := &pwmOscillator{pin: pin, ctrl: pwmBySlice(slice), refHz: refHz, inc: 1}
	if err := o.ctrl.Configure(machine.PWMConfig{Period: o.period()}); err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "platform.pwm", err)
	}
	// Channel switches the pin to PWM; hand it back to the GPIO latch.
	if o.ch, err = o.ctrl.Channel(pin); err != nil {
		return nil, errcode.Wrap(errcode.Unsupported, "platform.pwm", err)
	}
	o.ctrl.Set(o.ch, 0)
	o.DisconnectFromPin()
	return o, nil
}

func (o *pwmOscillator) period() uint64 {
	return uint64(2 * nco.HalfPeriod(o.refHz, o.inc))
}

func (o *pwmOscillator) SetIncrement(inc uint32) { o.inc = inc & nco.MaxIncrement }

func (o *pwmOscillator) Enable() {
	if err := o.ctrl.Configure(machine.PWMConfig{Period: o.period()}); err != nil {
		println("[platform] pwm period rejected:", err.Error())
		return
	}
	o.ctrl.Set(o.ch, o.ctrl.Top()/2)
}

func (o *pwmOscillator) Disable() { o.ctrl.Set(o.ch, 0) }

func (o *pwmOscillator) ConnectToPin() {
	o.pin.Configure(machine.PinConfig{Mode: machine.PinPWM})
}

func (o *pwmOscillator) DisconnectFromPin() {
	o.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
}

// ---- Control input ----

func controlInput(c types.ControlInput) (hw.ControlInput, error) {
	if c.Source == types.ControlPCF8591 {
		if err := configureI2C(c); err != nil {
			return nil, err
		}
		in, err := newPCFInput(rp2I2C{}, c)
		if err != nil {
			return nil, err
		}
		return in, nil
	}
	machine.InitADC()
	a := machine.ADC{Pin: machine.Pin(c.ADCPin)}
	a.Configure(machine.ADCConfig{})
	return adcInput{a: a}, nil
}

// adcInput keeps the top 8 bits of the 16-bit scaled conversion.
type adcInput struct{ a machine.ADC }

func (a adcInput) Sample() uint8 { return uint8(a.a.Get() >> 8) }

type rp2I2C struct{}

func (rp2I2C) ByID(id string) (drivers.I2C, bool) {
	bus, ok := i2cByID(id)
	if !ok {
		return nil, false
	}
	return bus, true
}

func i2cByID(id string) (*machine.I2C, bool) {
	switch id {
	case "i2c0":
		return machine.I2C0, true
	case "i2c1":
		return machine.I2C1, true
	}
	return nil, false
}

// configureI2C brings up the controller the PCF8591 hangs off, at the 100 kHz
// the part is rated for.
func configureI2C(c types.ControlInput) error {
	bus, ok := i2cByID(c.Bus)
	if !ok {
		return errcode.New(errcode.UnknownBus, "platform.i2c", c.Bus)
	}
	err := bus.Configure(machine.I2CConfig{
		Frequency: 100 * machine.KHz,
		SDA:       machine.Pin(c.SDA),
		SCL:       machine.Pin(c.SCL),
	})
	return errcode.Wrap(errcode.IOError, "platform.i2c", err)
}

// ---- Time ----

type rp2Clock struct{ start time.Time }

func (c rp2Clock) Now() time.Duration  { return time.Since(c.start) }
func (rp2Clock) Sleep(d time.Duration) { time.Sleep(d) }

// Every runs fn from a ticker goroutine. The scheduler is cooperative, so fn
// runs whenever the control loop sleeps.
func (rp2Clock) Every(period time.Duration, fn func()) (stop func()) {
	t := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-t.C:
				fn()
			case <-done:
				t.Stop()
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
