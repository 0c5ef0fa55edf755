//go:build rp2040 || rp2350

package platform

import (
	"context"
	"io"
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"clockgen-go/errcode"
	"clockgen-go/types"
)

func uartByID(id string) (*uartx.UART, bool) {
	switch id {
	case "uart0":
		return uartx.UART0, true
	case "uart1":
		return uartx.UART1, true
	}
	return nil, false
}

// dialUART configures the telemetry UART. The port stays configured after
// Close; a redial reconfigures it.
func dialUART(ctx context.Context, u types.UARTConfig) (io.ReadWriteCloser, error) {
	const op = "platform.uart"
	hw, ok := uartByID(u.ID)
	if !ok {
		return nil, errcode.New(errcode.UnknownBus, op, u.ID)
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: u.Baud,
		TX:       machine.Pin(u.TX),
		RX:       machine.Pin(u.RX),
	}); err != nil {
		return nil, errcode.Wrap(errcode.IOError, op, err)
	}
	par := uartx.ParityNone
	switch u.Parity {
	case "even":
		par = uartx.ParityEven
	case "odd":
		par = uartx.ParityOdd
	}
	if err := hw.SetFormat(8, 1, par); err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, op, err)
	}
	lctx, cancel := context.WithCancel(ctx)
	return &uartLink{u: hw, ctx: lctx, cancel: cancel}, nil
}

// uartLink reads until Close or the dial context ends.
type uartLink struct {
	u      *uartx.UART
	ctx    context.Context
	cancel context.CancelFunc
}

func (l *uartLink) Read(b []byte) (int, error) {
	n, err := l.u.RecvSomeContext(l.ctx, b)
	if err != nil && l.ctx.Err() != nil {
		return n, io.EOF
	}
	return n, err
}

func (l *uartLink) Write(b []byte) (int, error) {
	if l.ctx.Err() != nil {
		return 0, io.ErrClosedPipe
	}
	return l.u.Write(b)
}

func (l *uartLink) Close() error {
	l.cancel()
	return nil
}
