// Package nco models the numerically controlled oscillator used as the hardware
// generation strategy: a 20-bit phase accumulator clocked from the reference
// oscillator, whose overflow toggles the output in fixed duty cycle (FDC) mode.
//
//	F_out = F_ref * INC / 2^21
//
// The increment is held in three 8-bit registers (INCL, INCH, INCU), of which
// only the low nibble of INCU is implemented.
package nco

const (
	AccumulatorBits = 20
	accMask         = 1<<AccumulatorBits - 1

	// MaxIncrement is the largest programmable increment (20 bits).
	MaxIncrement = 1<<AccumulatorBits - 1

	// Control register bits.
	conEnable = 0x80 // N1EN
	conPFM    = 0x01 // N1PFM: 0 = fixed duty cycle
	incuMask  = 0x0F
)

// Registers is the byte-level view of the increment as the peripheral sees it.
type Registers struct {
	INCL uint8
	INCH uint8
	INCU uint8
}

// Split breaks a 20-bit increment into its three registers.
// Bits above bit 19 are discarded, as the hardware would.
func Split(inc uint32) Registers {
	return Registers{
		INCL: uint8(inc),
		INCH: uint8(inc >> 8),
		INCU: uint8(inc>>16) & incuMask,
	}
}

// Increment reassembles the 20-bit increment.
func (r Registers) Increment() uint32 {
	return uint32(r.INCL) | uint32(r.INCH)<<8 | uint32(r.INCU&incuMask)<<16
}
