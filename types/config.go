package types

// ClockConfig is the complete board configuration, supplied on config/clock.
type ClockConfig struct {
	Board   string       `json:"board"`
	RefHz   uint32       `json:"ref_hz"`
	Pins    ClockPins    `json:"pins"`
	Control ControlInput `json:"control"`
	Timing  ClockTiming  `json:"timing"`

	Bridge *BridgeConfig `json:"bridge,omitempty"`
}

// ClockPins are GPIO numbers. Switch inputs are active-low with pull-ups when
// ActiveLow is set.
type ClockPins struct {
	Output     int  `json:"output"`
	HaltSelect int  `json:"halt_select"`
	StepSelect int  `json:"step_select"`
	StepButton int  `json:"step_button"`
	Indicator  int  `json:"indicator"`
	ActiveLow  bool `json:"active_low"`
}

const (
	ControlADC     = "adc"
	ControlPCF8591 = "pcf8591"
)

// ControlInput selects where the 8-bit control sample comes from.
type ControlInput struct {
	Source string `json:"source"` // ControlADC or ControlPCF8591

	ADCPin int `json:"adc_pin,omitempty"`

	Bus     string `json:"bus,omitempty"` // e.g. "i2c0"
	SDA     int    `json:"sda,omitempty"`
	SCL     int    `json:"scl,omitempty"`
	Address uint16 `json:"address,omitempty"`
	Channel uint8  `json:"channel,omitempty"`
}

type ClockTiming struct {
	DebounceTick  Duration `json:"debounce_tick"`
	Slice         Duration `json:"slice"`       // software wait granularity
	CheckEvery    int      `json:"check_every"` // slices between check points
	HaltPoll      Duration `json:"halt_poll"`
	StepPoll      Duration `json:"step_poll"`
	PulseWidth    Duration `json:"pulse_width"`
	ReleaseSettle Duration `json:"release_settle"`
	HardwarePoll  Duration `json:"hardware_poll"`
	Blink         Duration `json:"blink"`
}

// CheckInterval is the time between check points of a software half-cycle.
func (t ClockTiming) CheckInterval() Duration {
	return t.Slice * Duration(t.CheckEvery)
}

// BridgeConfig enables the serial telemetry link. It is supplied on
// config/bridge.
type BridgeConfig struct {
	UART UARTConfig `json:"uart"`
	Ping Duration   `json:"ping,omitempty"` // link keepalive, 0 for the default
}

type UARTConfig struct {
	ID     string `json:"id"` // "uart0" or "uart1"
	Baud   uint32 `json:"baud"`
	TX     int    `json:"tx_pin"`
	RX     int    `json:"rx_pin"`
	Parity string `json:"parity,omitempty"` // "none", "even", "odd"

	// Device is the host serial port used instead of the MCU UART, e.g.
	// /dev/ttyUSB0.
	Device string `json:"device,omitempty"`
}
