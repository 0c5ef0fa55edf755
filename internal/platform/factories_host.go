//go:build !rp2040 && !rp2350

package platform

import (
	"time"

	"tinygo.org/x/drivers"

	"clockgen-go/errcode"
	"clockgen-go/internal/hw"
	"clockgen-go/internal/platform/sim"
	"clockgen-go/types"
)

// hostPin is a GPIO of the simulated board. Inputs read a logical sim.Level
// and present it with the configured electrical polarity; outputs forward to
// the simulated line or LED.
type hostPin struct {
	n         int
	in        *sim.Level
	activeLow bool
	out       hw.Line
	level     bool
	pull      hw.Pull
	isOutput  bool
}

func (p *hostPin) ConfigureInput(pull hw.Pull) error {
	if p.in == nil {
		return errcode.New(errcode.Unsupported, "platform.hostPin", "pin is output-only")
	}
	p.pull, p.isOutput = pull, false
	return nil
}

func (p *hostPin) ConfigureOutput(initial bool) error {
	if p.out == nil {
		return errcode.New(errcode.Unsupported, "platform.hostPin", "pin is input-only")
	}
	p.isOutput = true
	p.Set(initial)
	return nil
}

func (p *hostPin) Set(level bool) {
	p.level = level
	if p.out != nil {
		p.out.Set(level)
	}
}

func (p *hostPin) Get() bool {
	if p.in != nil {
		return p.in.Get() != p.activeLow
	}
	return p.level
}

func (p *hostPin) Number() int { return p.n }

type hostPins map[int]*hostPin

func (h hostPins) ByNumber(n int) (hw.GPIOPin, bool) {
	p, ok := h[n]
	return p, ok
}

type hostI2C map[string]drivers.I2C

func (h hostI2C) ByID(id string) (drivers.I2C, bool) {
	b, ok := h[id]
	return b, ok
}

// BuildSim wires cfg onto a fresh simulated board with the control input at
// sample. Pin conflicts in cfg surface as PinInUse, as on hardware.
func BuildSim(cfg types.ClockConfig, sample uint8) (*Hardware, *sim.Board, error) {
	b := sim.NewBoard(cfg.RefHz, sample)

	pins := hostPins{}
	add := func(p *hostPin) {
		if _, dup := pins[p.n]; !dup {
			pins[p.n] = p
		}
	}
	al := cfg.Pins.ActiveLow
	add(&hostPin{n: cfg.Pins.Output, out: b.Pin})
	add(&hostPin{n: cfg.Pins.Indicator, out: b.Indicator})
	add(&hostPin{n: cfg.Pins.HaltSelect, in: b.Halt, activeLow: al})
	add(&hostPin{n: cfg.Pins.StepSelect, in: b.Step, activeLow: al})
	add(&hostPin{n: cfg.Pins.StepButton, in: b.Button, activeLow: al})
	if cfg.Control.Source == types.ControlPCF8591 {
		add(&hostPin{n: cfg.Control.SDA, in: &sim.Level{}})
		add(&hostPin{n: cfg.Control.SCL, in: &sim.Level{}})
	} else {
		add(&hostPin{n: cfg.Control.ADCPin, in: &sim.Level{}})
	}
	if br := cfg.Bridge; br != nil {
		add(&hostPin{n: br.UART.TX, out: &sim.Level{}})
		add(&hostPin{n: br.UART.RX, in: &sim.Level{}})
	}

	reg := NewRegistry(pins)
	sw, err := claimSwitches(reg, cfg.Pins)
	if err != nil {
		return nil, nil, err
	}
	line, err := claimOutput(reg, "output", cfg.Pins.Output)
	if err != nil {
		return nil, nil, err
	}
	led, err := claimOutput(reg, "indicator", cfg.Pins.Indicator)
	if err != nil {
		return nil, nil, err
	}
	if err := claimControlPins(reg, cfg.Control); err != nil {
		return nil, nil, err
	}
	// The simulation has no serial port; the pins are only reserved.
	if err := claimLinkPins(reg, cfg.Bridge); err != nil {
		return nil, nil, err
	}

	h := &Hardware{
		Line:      line,
		Osc:       b.Osc,
		Indicator: led,
		Halt:      sw.halt,
		Step:      sw.step,
		Button:    sw.button,
		Control:   b.ADC,
		Clock:     b.Clock,
		Ticks:     b.Clock,
	}
	if cfg.Control.Source == types.ControlPCF8591 {
		addr := cfg.Control.Address
		if addr == 0 {
			addr = 0x48
		}
		buses := hostI2C{cfg.Control.Bus: &sim.PCF8591{ADC: b.ADC, Addr: addr}}
		in, err := newPCFInput(buses, cfg.Control)
		if err != nil {
			return nil, nil, err
		}
		h.Control = in
	}
	return h, b, nil
}

// pacedClock runs the simulation in step with wall time.
type pacedClock struct{ *sim.Clock }

func (c pacedClock) Sleep(d time.Duration) {
	time.Sleep(d)
	c.Clock.Sleep(d)
}

// Build returns a simulated board paced to wall time, so the firmware entry
// point also runs on the host.
func Build(cfg types.ClockConfig) (*Hardware, error) {
	h, _, err := BuildSim(cfg, 128)
	if err != nil {
		return nil, err
	}
	h.Clock = pacedClock{h.Clock.(*sim.Clock)}
	if cfg.Bridge != nil {
		h.Link = dialSerial
	}
	return h, nil
}
