package nco

import "time"

// FrequencyMilliHz returns the FDC-mode output frequency in mHz.
func FrequencyMilliHz(refHz, inc uint32) uint64 {
	// refHz*inc < 2^45, *1000 < 2^55.
	return uint64(refHz) * uint64(inc&MaxIncrement) * 1000 >> (AccumulatorBits + 1)
}

// IncrementFor returns the increment closest to the requested frequency,
// clamped to [1, MaxIncrement]. Zero is never returned.
func IncrementFor(refHz uint32, milliHz uint64) uint32 {
	if refHz == 0 {
		return 1
	}
	if milliHz >= 1<<(64-AccumulatorBits-2) {
		return MaxIncrement
	}
	den := uint64(refHz) * 1000
	inc := (milliHz<<(AccumulatorBits+1) + den/2) / den
	switch {
	case inc < 1:
		return 1
	case inc > MaxIncrement:
		return MaxIncrement
	}
	return uint32(inc)
}

// HalfPeriod returns the time between output toggles for an increment.
// A zero increment never overflows; the result is then 0.
func HalfPeriod(refHz, inc uint32) time.Duration {
	inc &= MaxIncrement
	if refHz == 0 || inc == 0 {
		return 0
	}
	// 2^20 / (refHz*inc) seconds.
	return time.Duration(uint64(time.Second) << AccumulatorBits / (uint64(refHz) * uint64(inc)))
}

// MinFrequencyMilliHz is the lowest frequency the accumulator can produce (INC = 1).
func MinFrequencyMilliHz(refHz uint32) uint64 { return FrequencyMilliHz(refHz, 1) }
