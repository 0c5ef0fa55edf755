package nco

import (
	"testing"
	"time"
)

const refHz = 24_000_000

func TestSplitAndReassemble(t *testing.T) {
	r := Split(0xABCDE)
	if r.INCL != 0xDE || r.INCH != 0xBC || r.INCU != 0x0A {
		t.Fatalf("unexpected split %+v", r)
	}
	if r.Increment() != 0xABCDE {
		t.Fatalf("reassembled %#x", r.Increment())
	}
	// Only the low nibble of INCU exists.
	if Split(0xFFFFFFFF).Increment() != MaxIncrement {
		t.Fatalf("upper bits must be discarded")
	}
}

func TestFrequencyMaths(t *testing.T) {
	// INC = 1 is the floor of the hardware strategy (~11.44 Hz).
	if got := MinFrequencyMilliHz(refHz); got != 11444 {
		t.Fatalf("min frequency = %d mHz", got)
	}
	// 1 MHz needs INC = 87381.
	if inc := IncrementFor(refHz, 1_000_000_000); inc != 87381 {
		t.Fatalf("IncrementFor(1MHz) = %d", inc)
	}
	if f := FrequencyMilliHz(refHz, 87381); f < 999_990_000 || f > 1_000_000_000 {
		t.Fatalf("FrequencyMilliHz(87381) = %d", f)
	}
	if IncrementFor(refHz, 1) != 1 {
		t.Fatalf("IncrementFor must never return 0")
	}
	if IncrementFor(refHz, 1<<62) != MaxIncrement {
		t.Fatalf("IncrementFor must clamp to MaxIncrement")
	}
}

func TestHalfPeriod(t *testing.T) {
	// INC = 2^10 at 24 MHz: 2^20/(24e6*1024) s = 42.666 us.
	if hp := HalfPeriod(refHz, 1024); hp != 42666*time.Nanosecond {
		t.Fatalf("HalfPeriod = %v", hp)
	}
	if HalfPeriod(refHz, 0) != 0 {
		t.Fatalf("zero increment has no half-period")
	}
}

func TestDeviceAdvanceToggles(t *testing.T) {
	d := New()
	d.WriteIncrement(1 << 18) // overflow every 4 cycles
	d.Enable()
	if d.Advance(3) != 0 || d.Output() {
		t.Fatalf("no overflow expected after 3 cycles")
	}
	if d.Advance(1) != 1 || !d.Output() {
		t.Fatalf("first overflow must drive the output high")
	}
	if d.Advance(8) != 2 || !d.Output() {
		t.Fatalf("two further toggles must leave the output high")
	}
	d.Disable()
	if d.Output() {
		t.Fatalf("disabled NCO must hold its output low")
	}
	if d.Advance(100) != 0 {
		t.Fatalf("disabled NCO must not count")
	}
}

func TestDeviceTornWriteDetection(t *testing.T) {
	d := New()
	d.WriteIncrement(500)
	if d.TornWrites() != 0 {
		t.Fatalf("write while disabled is safe")
	}
	d.Enable()
	d.WriteIncrement(600)
	if d.TornWrites() != 1 {
		t.Fatalf("write while enabled must be flagged")
	}
}

func TestCyclesToOverflow(t *testing.T) {
	d := New()
	if d.CyclesToOverflow() != 0 {
		t.Fatalf("disabled NCO never overflows")
	}
	d.WriteIncrement(3 << 16) // 2^20 / (3*2^16) = 5.33 cycles
	d.Enable()
	if k := d.CyclesToOverflow(); k != 6 {
		t.Fatalf("first overflow after %d cycles, want 6", k)
	}
	d.Advance(6)
	if !d.Output() {
		t.Fatalf("expected toggle after CyclesToOverflow cycles")
	}
}
