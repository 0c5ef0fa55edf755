// Package platform builds the clock's hardware boundary for the target: the
// RP2 family on TinyGo, or a deterministic simulation on the host.
package platform

import (
	"context"
	"io"
	"sync"

	"tinygo.org/x/drivers"

	"clockgen-go/drivers/pcf8591"
	"clockgen-go/errcode"
	"clockgen-go/internal/hw"
	"clockgen-go/types"
)

// Hardware is everything the clock service needs from the board.
type Hardware struct {
	Line      hw.Line
	Osc       hw.Oscillator
	Indicator hw.Indicator

	Halt   hw.Switch
	Step   hw.Switch
	Button hw.Switch // raw, undebounced

	Control hw.ControlInput

	Clock hw.Clock
	Ticks hw.TickSource

	// Link opens the telemetry UART. Nil when the board has none.
	Link LinkDialer
}

type LinkDialer func(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error)

// ---- GPIO claiming ----

// Registry hands out each GPIO to a single owner.
type Registry struct {
	mu   sync.Mutex
	pins hw.PinFactory
	used map[int]string
}

func NewRegistry(pins hw.PinFactory) *Registry {
	return &Registry{pins: pins, used: make(map[int]string)}
}

func (r *Registry) Claim(owner string, n int) (hw.GPIOPin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pins.ByNumber(n)
	if !ok {
		return nil, errcode.New(errcode.UnknownPin, "platform.Claim", owner)
	}
	if prev, inUse := r.used[n]; inUse {
		return nil, errcode.New(errcode.PinInUse, "platform.Claim", owner+" and "+prev)
	}
	r.used[n] = owner
	return p, nil
}

func (r *Registry) Release(owner string, n int) {
	r.mu.Lock()
	if r.used[n] == owner {
		delete(r.used, n)
	}
	r.mu.Unlock()
}

// Owner reports who holds pin n.
func (r *Registry) Owner(n int) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.used[n]
	return o, ok
}

// claimSwitch configures n as an input. Active-low inputs get a pull-up and
// are inverted so that true always means asserted.
func claimSwitch(reg *Registry, owner string, n int, activeLow bool) (hw.Switch, error) {
	p, err := reg.Claim(owner, n)
	if err != nil {
		return nil, err
	}
	if !activeLow {
		if err := p.ConfigureInput(hw.PullNone); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err := p.ConfigureInput(hw.PullUp); err != nil {
		return nil, err
	}
	return hw.Inverted{Pin: p}, nil
}

func claimOutput(reg *Registry, owner string, n int) (hw.GPIOPin, error) {
	p, err := reg.Claim(owner, n)
	if err != nil {
		return nil, err
	}
	if err := p.ConfigureOutput(false); err != nil {
		return nil, err
	}
	return p, nil
}

type switches struct{ halt, step, button hw.Switch }

func claimSwitches(reg *Registry, pins types.ClockPins) (switches, error) {
	var s switches
	var err error
	if s.halt, err = claimSwitch(reg, "halt_select", pins.HaltSelect, pins.ActiveLow); err != nil {
		return s, err
	}
	if s.step, err = claimSwitch(reg, "step_select", pins.StepSelect, pins.ActiveLow); err != nil {
		return s, err
	}
	s.button, err = claimSwitch(reg, "step_button", pins.StepButton, pins.ActiveLow)
	return s, err
}

// claimControlPins reserves the analog pin, or the I2C pins of the external
// converter. The bus driver configures them itself.
func claimControlPins(reg *Registry, c types.ControlInput) error {
	if c.Source == types.ControlPCF8591 {
		if _, err := reg.Claim("i2c_sda", c.SDA); err != nil {
			return err
		}
		_, err := reg.Claim("i2c_scl", c.SCL)
		return err
	}
	_, err := reg.Claim("control", c.ADCPin)
	return err
}

// claimLinkPins reserves the telemetry UART pins when the board has a link.
func claimLinkPins(reg *Registry, b *types.BridgeConfig) error {
	if b == nil {
		return nil
	}
	if _, err := reg.Claim("uart_tx", b.UART.TX); err != nil {
		return err
	}
	_, err := reg.Claim("uart_rx", b.UART.RX)
	return err
}

// ---- PCF8591 control input ----

// pcfInput adapts the external ADC to hw.ControlInput. A failed read keeps the
// last good sample so the control loop never sees a bogus frequency change.
type pcfInput struct {
	dev  pcf8591.Device
	last uint8
	errs uint32
}

func newPCFInput(buses hw.I2CBusFactory, c types.ControlInput) (*pcfInput, error) {
	const op = "platform.pcf8591"
	bus, ok := buses.ByID(c.Bus)
	if !ok {
		return nil, errcode.New(errcode.UnknownBus, op, c.Bus)
	}
	return newPCFInputOn(bus, c)
}

func newPCFInputOn(bus drivers.I2C, c types.ControlInput) (*pcfInput, error) {
	const op = "platform.pcf8591"
	in := &pcfInput{dev: pcf8591.New(bus)}
	if err := in.dev.Configure(pcf8591.Config{Address: c.Address, Channel: c.Channel}); err != nil {
		if err == pcf8591.ErrChannel {
			return nil, errcode.Wrap(errcode.InvalidParams, op, err)
		}
		return nil, errcode.Wrap(errcode.MapDriverErr(err), op, err)
	}
	// Prime the conversion pipeline so the first Sample is current.
	if v, err := in.dev.Read(); err == nil {
		in.last = v
	}
	return in, nil
}

func (p *pcfInput) Sample() uint8 {
	v, err := p.dev.Read()
	if err != nil {
		p.errs++
		if p.errs == 1 {
			println("[platform] pcf8591 read failed:", err.Error())
		}
		return p.last
	}
	p.last = v
	return v
}

// Errors counts failed reads.
func (p *pcfInput) Errors() uint32 { return p.errs }
