// Package pcf8591 provides a driver for the PCF8591 8-bit A/D and D/A converter.
//
// The converter is used here as an external control-input ADC: a potentiometer on
// one single-ended channel selects the output frequency. Each conversion is
// triggered by the read itself, so the first byte of any read is the result of
// the previous conversion and is discarded:
//
//	err := d.Configure(pcf8591.Config{Channel: 0})
//	v, err := d.Read()
package pcf8591

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Address is the base 7-bit I2C address (A2..A0 strapped low).
const Address = 0x48

const (
	ctrlAnalogOut     = 0x40
	ctrlAutoIncrement = 0x04
	ctrlChannelMask   = 0x03

	// Input programming (bits 5:4).
	InputSingleEnded = 0x00
	InputThreeDiff   = 0x10
	InputMixed       = 0x20
	InputTwoDiff     = 0x30
	inputProgramMask = 0x30
)

// Errors returned by the driver.
var (
	ErrChannel = errors.New("pcf8591: invalid channel")
)

// Config controls channel selection. All fields are optional.
type Config struct {
	// Address defaults to 0x48 if zero.
	Address uint16
	// Channel is the A/D input, 0..3.
	Channel uint8
	// Input is one of the Input* programming modes; defaults to single-ended.
	Input uint8
	// AnalogOut keeps the D/A output enabled, which also keeps the internal
	// oscillator running between conversions.
	AnalogOut bool
}

// Device wraps an I2C connection to a PCF8591.
type Device struct {
	bus     drivers.I2C
	Address uint16

	ctrl byte
	buf  [2]byte // previous conversion, current conversion
}

// New creates a new PCF8591 connection. The I2C bus must already be configured.
// It does not touch the device.
func New(bus drivers.I2C) Device {
	return Device{bus: bus, Address: Address}
}

// Configure writes the control byte selecting the channel.
func (d *Device) Configure(cfg Config) error {
	if cfg.Channel > ctrlChannelMask {
		return ErrChannel
	}
	if cfg.Address != 0 {
		d.Address = cfg.Address
	}
	d.ctrl = cfg.Channel | (cfg.Input & inputProgramMask)
	if cfg.AnalogOut {
		d.ctrl |= ctrlAnalogOut
	}
	return d.bus.Tx(d.Address, []byte{d.ctrl}, nil)
}

// Read triggers a conversion on the configured channel and returns it.
func (d *Device) Read() (uint8, error) {
	if err := d.bus.Tx(d.Address, []byte{d.ctrl &^ ctrlAutoIncrement}, d.buf[:]); err != nil {
		return 0, err
	}
	return d.buf[1], nil
}

// Control returns the control byte that will be sent with each read.
func (d *Device) Control() byte { return d.ctrl }
