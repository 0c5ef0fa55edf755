//go:build !rp2040 && !rp2350

package platform

import (
	"context"
	"io"

	"go.bug.st/serial"

	"clockgen-go/errcode"
	"clockgen-go/types"
)

// serialMode maps the link settings onto a host serial port mode, 8 data bits
// and one stop bit.
func serialMode(u types.UARTConfig) (*serial.Mode, error) {
	m := &serial.Mode{BaudRate: int(u.Baud), DataBits: 8, StopBits: serial.OneStopBit}
	switch u.Parity {
	case "", "none":
		m.Parity = serial.NoParity
	case "even":
		m.Parity = serial.EvenParity
	case "odd":
		m.Parity = serial.OddParity
	default:
		return nil, errcode.New(errcode.InvalidParams, "platform.serial", "parity "+u.Parity)
	}
	return m, nil
}

// dialSerial opens the host port named by u.Device. The MCU UART id is not
// meaningful on the host.
func dialSerial(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error) {
	const op = "platform.serial"
	if u.Device == "" {
		return nil, errcode.New(errcode.Unsupported, op, "no host device for "+u.ID)
	}
	mode, err := serialMode(u)
	if err != nil {
		return nil, err
	}
	p, err := serial.Open(u.Device, mode)
	if err != nil {
		return nil, errcode.Wrap(errcode.IOError, op, err)
	}
	return p, nil
}
