// Package conv formats numbers into caller-owned buffers without fmt or
// strconv, for status lines on the MCU.
package conv

// Utoa writes the base-10 digits of n at the end of buf and returns them.
// buf should hold 20 bytes for any uint64.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	if i == 0 {
		return buf
	}
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 || i == 0 {
			break
		}
	}
	return buf[i:]
}

// AppendUint appends the decimal form of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	var tmp [20]byte
	return append(dst, Utoa(tmp[:], n)...)
}

// AppendMilli appends v/1000 with three decimals, e.g. 1500 -> "1.500".
func AppendMilli(dst []byte, v uint64) []byte {
	dst = AppendUint(dst, v/1000)
	frac := v % 1000
	return append(dst, '.', byte('0'+frac/100), byte('0'+frac/10%10), byte('0'+frac%10))
}

// AppendHz appends a frequency given in mHz with a unit scaled for reading:
// "1.000Hz", "225.000Hz", "12.345kHz", "1.000MHz".
func AppendHz(dst []byte, milliHz uint64) []byte {
	switch {
	case milliHz >= 1_000_000_000:
		return append(AppendMilli(dst, milliHz/1_000_000), "MHz"...)
	case milliHz >= 1_000_000:
		return append(AppendMilli(dst, milliHz/1_000), "kHz"...)
	}
	return append(AppendMilli(dst, milliHz), "Hz"...)
}
