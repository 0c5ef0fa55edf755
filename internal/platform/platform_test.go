//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"testing"

	"go.bug.st/serial"

	"clockgen-go/errcode"
	"clockgen-go/internal/platform/sim"
	"clockgen-go/services/config"
	"clockgen-go/types"
)

func simConfig() types.ClockConfig {
	c, _ := config.BoardLookup("sim")
	return config.WithDefaults(c)
}

func TestBuildSimWiresBoard(t *testing.T) {
	h, b, err := BuildSim(simConfig(), 42)
	if err != nil {
		t.Fatalf("BuildSim: %v", err)
	}
	if h.Control.Sample() != 42 {
		t.Fatalf("control not wired to the board ADC")
	}
	b.Halt.Set(true)
	b.Button.Set(true)
	if !h.Halt.Get() || h.Step.Get() || !h.Button.Get() {
		t.Fatalf("switches not wired")
	}
	h.Line.Set(true)
	if !b.Pin.Level() {
		t.Fatalf("line not wired to the output pin")
	}
	h.Indicator.Set(true)
	if !b.Indicator.On() {
		t.Fatalf("indicator not wired")
	}
}

func TestActiveLowSwitchesAreInverted(t *testing.T) {
	c := simConfig()
	c.Pins.ActiveLow = true
	h, b, err := BuildSim(c, 0)
	if err != nil {
		t.Fatalf("BuildSim: %v", err)
	}
	if h.Step.Get() {
		t.Fatalf("released switch reads asserted")
	}
	b.Step.Set(true)
	if !h.Step.Get() {
		t.Fatalf("pressed switch reads released")
	}
}

func TestPinConflicts(t *testing.T) {
	c := simConfig()
	c.Pins.StepButton = c.Pins.Output
	if _, _, err := BuildSim(c, 0); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("got %v", err)
	}
	c = simConfig()
	c.Control.ADCPin = c.Pins.Indicator
	if _, _, err := BuildSim(c, 0); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("adc on indicator: got %v", err)
	}
	c = simConfig()
	c.Bridge = &types.BridgeConfig{UART: types.UARTConfig{ID: "uart0", Baud: 9600, TX: 10, RX: c.Pins.HaltSelect}}
	if _, _, err := BuildSim(c, 0); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("uart on halt select: got %v", err)
	}
	c.Bridge.UART.RX = 11
	h, _, err := BuildSim(c, 0)
	if err != nil {
		t.Fatalf("bridge pins: %v", err)
	}
	if h.Link != nil {
		t.Fatalf("simulated board has no serial link")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(hostPins{3: &hostPin{n: 3, in: &sim.Level{}}})
	if _, err := reg.Claim("a", 4); errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("unknown pin: %v", err)
	}
	if _, err := reg.Claim("a", 3); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := reg.Claim("b", 3); errcode.Of(err) != errcode.PinInUse {
		t.Fatalf("double claim: %v", err)
	}
	reg.Release("b", 3)
	if o, _ := reg.Owner(3); o != "a" {
		t.Fatalf("release by a non-owner freed the pin")
	}
	reg.Release("a", 3)
	if _, held := reg.Owner(3); held {
		t.Fatalf("pin still held")
	}
}

func TestPCF8591ControlInput(t *testing.T) {
	c := simConfig()
	c.Control = types.ControlInput{Source: types.ControlPCF8591, Bus: "i2c0", SDA: 8, SCL: 9, Channel: 2}
	h, b, err := BuildSim(c, 10)
	if err != nil {
		t.Fatalf("BuildSim: %v", err)
	}
	b.ADC.Set(77)
	if got := h.Control.Sample(); got != 77 {
		t.Fatalf("sample %d, want the current conversion", got)
	}
}

func TestPCF8591KeepsLastSampleOnError(t *testing.T) {
	adc := &sim.ADC{}
	adc.Set(90)
	chip := &sim.PCF8591{ADC: adc, Addr: 0x48}
	in, err := newPCFInput(hostI2C{"i2c1": chip}, types.ControlInput{Bus: "i2c1", Address: 0x48, Channel: 1})
	if err != nil {
		t.Fatalf("newPCFInput: %v", err)
	}
	if chip.Control()&0x03 != 1 || chip.Configs != 1 {
		t.Fatalf("channel not configured: ctrl %#x", chip.Control())
	}
	if in.Sample() != 90 {
		t.Fatalf("first sample")
	}
	chip.Fail = true
	adc.Set(10)
	if in.Sample() != 90 || in.Errors() != 1 {
		t.Fatalf("failed read must keep the last sample")
	}
}

func TestPCF8591Errors(t *testing.T) {
	if _, err := newPCFInput(hostI2C{}, types.ControlInput{Bus: "i2c7"}); errcode.Of(err) != errcode.UnknownBus {
		t.Fatalf("unknown bus: %v", err)
	}
	chip := &sim.PCF8591{ADC: &sim.ADC{}, Addr: 0x49}
	if _, err := newPCFInputOn(chip, types.ControlInput{Address: 0x48}); errcode.Of(err) != errcode.IOError {
		t.Fatalf("nack: %v", err)
	}
	if _, err := newPCFInputOn(chip, types.ControlInput{Address: 0x49, Channel: 5}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("bad channel: %v", err)
	}
}

func TestBuildDefaultBoardOnHost(t *testing.T) {
	h, err := Build(config.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := h.Clock.(pacedClock); !ok {
		t.Fatalf("host Build should pace the simulation")
	}
	if h.Halt.Get() || h.Step.Get() {
		t.Fatalf("active-low switches should read released")
	}
}

func TestHostLinkUsesSerialDevice(t *testing.T) {
	c := config.Default()
	c.Bridge = &types.BridgeConfig{UART: types.UARTConfig{ID: "uart0", Baud: 115200, TX: 0, RX: 1}}
	h, err := Build(c)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if h.Link == nil {
		t.Fatalf("no link dialer")
	}
	if _, err := h.Link(context.Background(), c.Bridge.UART); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("dial without device: %v", err)
	}
	u := c.Bridge.UART
	u.Device = "/nonexistent/tty-clockgen"
	if _, err := h.Link(context.Background(), u); errcode.Of(err) != errcode.IOError {
		t.Fatalf("dial missing device: %v", err)
	}
}

func TestSerialMode(t *testing.T) {
	m, err := serialMode(types.UARTConfig{Baud: 9600, Parity: "even"})
	if err != nil || m.BaudRate != 9600 || m.DataBits != 8 || m.Parity != serial.EvenParity {
		t.Fatalf("mode %+v, %v", m, err)
	}
	if _, err := serialMode(types.UARTConfig{Baud: 9600, Parity: "space"}); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("bad parity: %v", err)
	}
}
