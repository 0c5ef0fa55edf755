package nco

// Device is a cycle-level model of the NCO peripheral. Register writes go
// through the same byte-wise path as on silicon, so a write issued while the
// accumulator is running is recorded as torn: the accumulator could step with
// a half-written increment between the individual byte writes.
type Device struct {
	con  uint8
	regs Registers
	acc  uint32
	out  bool

	tornWrites uint32
}

// New returns a disabled NCO with INC = 1 and a cleared accumulator, matching
// the power-on configuration of the firmware.
func New() *Device {
	return &Device{regs: Split(1)}
}

// Enable sets N1EN in fixed duty cycle mode.
func (d *Device) Enable() { d.con = conEnable }

// Disable clears N1EN. The output is held low while disabled.
func (d *Device) Disable() {
	d.con = 0
	d.out = false
}

func (d *Device) Enabled() bool { return d.con&conEnable != 0 }

// WriteIncrement writes INCL, INCH then INCU.
func (d *Device) WriteIncrement(inc uint32) {
	r := Split(inc)
	if d.Enabled() {
		d.tornWrites++
	}
	d.regs.INCL = r.INCL
	d.regs.INCH = r.INCH
	d.regs.INCU = r.INCU
}

func (d *Device) Increment() uint32 { return d.regs.Increment() }
func (d *Device) Registers() Registers { return d.regs }

// ClearAccumulator zeroes NCO1ACC.
func (d *Device) ClearAccumulator() { d.acc = 0 }

// Advance clocks the accumulator by n reference cycles. Every overflow
// toggles the output. Returns the number of toggles.
func (d *Device) Advance(n uint64) uint64 {
	if !d.Enabled() || n == 0 {
		return 0
	}
	total := uint64(d.acc) + n*uint64(d.regs.Increment())
	toggles := total >> AccumulatorBits
	d.acc = uint32(total & accMask)
	if toggles&1 == 1 {
		d.out = !d.out
	}
	return toggles
}

// Output is the current NCO output level.
func (d *Device) Output() bool { return d.out }

// TornWrites counts increment writes issued while the NCO was enabled.
func (d *Device) TornWrites() uint32 { return d.tornWrites }

// CyclesToOverflow returns the reference cycles until the next output toggle,
// or 0 if the NCO is disabled.
func (d *Device) CyclesToOverflow() uint64 {
	inc := uint64(d.regs.Increment())
	if !d.Enabled() || inc == 0 {
		return 0
	}
	return (1<<AccumulatorBits - uint64(d.acc) + inc - 1) / inc
}
