package sim

import "errors"

// ErrNack is returned for transfers to an address nothing answers on.
var ErrNack = errors.New("sim: i2c nack")

// PCF8591 emulates the external converter on an I2C bus (drivers.I2C). Each
// read returns the previous conversion followed by a fresh one taken from ADC.
type PCF8591 struct {
	ADC  *ADC
	Addr uint16

	ctrl    byte
	prev    byte
	Fail    bool // force a NACK on every transfer
	Configs int  // write-only transfers (Configure)
}

func (d *PCF8591) Tx(addr uint16, w, r []byte) error {
	if d.Fail || addr != d.Addr {
		return ErrNack
	}
	if len(w) > 0 {
		if len(r) == 0 {
			d.Configs++
		}
		d.ctrl = w[0]
	}
	if len(r) > 0 {
		cur := d.ADC.Sample()
		r[0] = d.prev
		if len(r) > 1 {
			r[1] = cur
		}
		d.prev = cur
	}
	return nil
}

// Control is the last control byte written.
func (d *PCF8591) Control() byte { return d.ctrl }
