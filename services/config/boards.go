package config

import "clockgen-go/types"

// Board setups compiled into the firmware, keyed by board name. Unset timing
// fields take the defaults.
var boards = map[string]types.ClockConfig{
	// Pico with the control pot on ADC0.
	"pico": {
		Board: "pico",
		Pins: types.ClockPins{
			Output: 15, HaltSelect: 16, StepSelect: 17, StepButton: 18,
			Indicator: 25, ActiveLow: true,
		},
		Control: types.ControlInput{Source: types.ControlADC, ADCPin: 26},
		Bridge:  picoBridge,
	},
	// Pico with an external PCF8591 on i2c0 (pot on AIN0).
	"pico_pcf8591": {
		Board: "pico_pcf8591",
		Pins: types.ClockPins{
			Output: 15, HaltSelect: 16, StepSelect: 17, StepButton: 18,
			Indicator: 25, ActiveLow: true,
		},
		Control: types.ControlInput{
			Source: types.ControlPCF8591, Bus: "i2c0", SDA: 4, SCL: 5,
			Address: 0x48, Channel: 0,
		},
		Bridge: picoBridge,
	},
	// Host simulation: logical inputs, no pull-ups.
	"sim": {
		Board: "sim",
		Pins: types.ClockPins{
			Output: 0, HaltSelect: 1, StepSelect: 2, StepButton: 3, Indicator: 4,
		},
		Control: types.ControlInput{Source: types.ControlADC, ADCPin: 5},
	},
}

// Telemetry on the debug header pins.
var picoBridge = &types.BridgeConfig{
	UART: types.UARTConfig{ID: "uart0", Baud: 115200, TX: 0, RX: 1},
}

// Boards lists the compiled-in board names.
func Boards() []string {
	out := make([]string, 0, len(boards))
	for k := range boards {
		out = append(out, k)
	}
	return out
}
