package config

import (
	"context"
	"time"

	"clockgen-go/bus"
	"clockgen-go/errcode"
	"clockgen-go/internal/freqtable"
	"clockgen-go/types"
	"clockgen-go/x/timex"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for the board name
)

// BoardLookup resolves a board name to its configuration. Tests override it.
var BoardLookup = func(board string) (types.ClockConfig, bool) {
	c, ok := boards[board]
	return c, ok
}

// Default is the stock timing on the default board.
func Default() types.ClockConfig {
	return types.ClockConfig{
		Board: "pico",
		RefHz: freqtable.RefHz,
		Pins: types.ClockPins{
			Output:     15,
			HaltSelect: 16,
			StepSelect: 17,
			StepButton: 18,
			Indicator:  25,
			ActiveLow:  true,
		},
		Control: types.ControlInput{Source: types.ControlADC, ADCPin: 26},
		Timing:  DefaultTiming(),
	}
}

func DefaultTiming() types.ClockTiming {
	ms := func(n int64) types.Duration { return types.Duration(time.Duration(n) * time.Millisecond) }
	return types.ClockTiming{
		DebounceTick:  types.Duration(1504 * time.Microsecond),
		Slice:         types.Duration(10 * time.Microsecond),
		CheckEvery:    1024,
		HaltPoll:      ms(50),
		StepPoll:      ms(10),
		PulseWidth:    ms(10),
		ReleaseSettle: ms(20),
		HardwarePoll:  ms(20),
		Blink:         ms(100),
	}
}

// WithDefaults fills every unset field from Default.
func WithDefaults(c types.ClockConfig) types.ClockConfig {
	d := Default()
	if c.RefHz == 0 {
		c.RefHz = d.RefHz
	}
	if c.Control.Source == "" {
		c.Control = d.Control
	}
	if c.Control.Source == types.ControlPCF8591 && c.Control.Address == 0 {
		c.Control.Address = 0x48
	}
	t, dt := &c.Timing, d.Timing
	fill := func(v *types.Duration, def types.Duration) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&t.DebounceTick, dt.DebounceTick)
	fill(&t.Slice, dt.Slice)
	fill(&t.HaltPoll, dt.HaltPoll)
	fill(&t.StepPoll, dt.StepPoll)
	fill(&t.PulseWidth, dt.PulseWidth)
	fill(&t.ReleaseSettle, dt.ReleaseSettle)
	fill(&t.HardwarePoll, dt.HardwarePoll)
	fill(&t.Blink, dt.Blink)
	if t.CheckEvery <= 0 {
		t.CheckEvery = dt.CheckEvery
	}
	return c
}

// Validate checks pin assignments and timing, and that the built-in table can
// be generated at the configured slice granularity.
func Validate(c types.ClockConfig) error {
	const op = "config.Validate"
	if c.RefHz == 0 {
		return errcode.New(errcode.InvalidParams, op, "ref_hz is zero")
	}

	type use struct {
		name string
		pin  int
	}
	uses := []use{
		{"output", c.Pins.Output},
		{"halt_select", c.Pins.HaltSelect},
		{"step_select", c.Pins.StepSelect},
		{"step_button", c.Pins.StepButton},
		{"indicator", c.Pins.Indicator},
	}
	switch c.Control.Source {
	case types.ControlADC:
		uses = append(uses, use{"adc_pin", c.Control.ADCPin})
	case types.ControlPCF8591:
		if c.Control.Bus == "" {
			return errcode.New(errcode.InvalidParams, op, "pcf8591 needs a bus")
		}
		if c.Control.Channel > 3 {
			return errcode.New(errcode.InvalidParams, op, "pcf8591 channel out of range")
		}
		uses = append(uses, use{"sda", c.Control.SDA}, use{"scl", c.Control.SCL})
	default:
		return errcode.New(errcode.InvalidParams, op, "unknown control source "+c.Control.Source)
	}
	if b := c.Bridge; b != nil {
		switch b.UART.ID {
		case "uart0", "uart1":
		default:
			return errcode.New(errcode.UnknownBus, op, "bridge uart "+b.UART.ID)
		}
		switch b.UART.Parity {
		case "", "none", "even", "odd":
		default:
			return errcode.New(errcode.InvalidParams, op, "bridge parity "+b.UART.Parity)
		}
		if b.UART.Baud == 0 || b.Ping < 0 {
			return errcode.New(errcode.InvalidParams, op, "bridge baud or ping")
		}
		uses = append(uses, use{"uart_tx", b.UART.TX}, use{"uart_rx", b.UART.RX})
	}
	owner := make(map[int]string, len(uses))
	for _, u := range uses {
		if u.pin < 0 {
			return errcode.New(errcode.UnknownPin, op, u.name)
		}
		if prev, ok := owner[u.pin]; ok {
			return errcode.New(errcode.PinInUse, op, u.name+" and "+prev)
		}
		owner[u.pin] = u.name
	}

	t := c.Timing
	for _, d := range []types.Duration{t.DebounceTick, t.Slice, t.HaltPoll, t.StepPoll,
		t.PulseWidth, t.ReleaseSettle, t.HardwarePoll, t.Blink} {
		if d <= 0 {
			return errcode.New(errcode.InvalidParams, op, "non-positive timing")
		}
	}
	if t.CheckEvery <= 0 {
		return errcode.New(errcode.InvalidParams, op, "check_every must be positive")
	}
	slice := timex.DurationToCycles(t.Slice.D(), c.RefHz)
	if slice > 1<<32-1 {
		return errcode.New(errcode.InvalidParams, op, "slice too long")
	}
	if err := freqtable.Default().Validate(uint32(slice)); err != nil {
		return errcode.Wrap(errcode.InvalidTable, op, err)
	}
	return nil
}

// Selected returns the configuration of the board this binary was built for.
func Selected() types.ClockConfig {
	c, ok := BoardLookup(SelectedBoard)
	if !ok {
		println("[config] no setup for board", SelectedBoard, "using defaults")
		return Default()
	}
	return WithDefaults(c)
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// publishConfig publishes the board's configuration as retained messages:
// config/clock, config/heartbeat and, when the board has a link, config/bridge.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	const op = "config.publish"
	board, _ := ctx.Value(CtxDeviceKey).(string)
	if board == "" {
		return errcode.New(errcode.InvalidParams, op, "missing board in context")
	}
	c, ok := BoardLookup(board)
	if !ok {
		return errcode.New(errcode.Unsupported, op, "no setup for board "+board)
	}
	c = WithDefaults(c)
	if err := Validate(c); err != nil {
		return err
	}
	conn.Publish(conn.NewMessage(bus.T(configPrefix, "clock"), c, true))
	conn.Publish(conn.NewMessage(bus.T(configPrefix, "heartbeat"),
		types.HeartbeatConfig{Interval: types.Duration(heartbeatInterval)}, true))
	if c.Bridge != nil {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, "bridge"), *c.Bridge, true))
	}
	return nil
}

const heartbeatInterval = 2 * time.Second

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config]", err.Error())
		}
	}()
}
