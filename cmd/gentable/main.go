// Command gentable writes the built-in frequency table for internal/freqtable.
//
// Samples map logarithmically from 1 Hz to 1 MHz. Entries below the NCO floor
// (one increment step, RefHz/2^21) become software-timed half-periods in
// reference cycles; the rest become NCO increments.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"math"
	"os"

	"clockgen-go/drivers/nco"
)

func main() {
	out := flag.String("o", "table_gen.go", "output file")
	lo := flag.Float64("min", 1, "frequency at sample 0, Hz")
	hi := flag.Float64("max", 1_000_000, "frequency at sample 255, Hz")
	ref := flag.Uint("ref", 24_000_000, "reference clock, Hz")
	flag.Parse()

	src, err := generate(float64(*ref), *lo, *hi)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gentable:", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "gentable:", err)
		os.Exit(1)
	}
}

func generate(ref, lo, hi float64) ([]byte, error) {
	if lo <= 0 || hi <= lo || ref <= 0 {
		return nil, fmt.Errorf("bad range %g..%g Hz at %g Hz", lo, hi, ref)
	}
	floor := ref / (1 << (nco.AccumulatorBits + 1))
	span := math.Log10(hi / lo)

	var b bytes.Buffer
	b.WriteString("// Code generated by gentable; DO NOT EDIT.\n\npackage freqtable\n\n")
	fmt.Fprintf(&b, "// defaultTable spans %g Hz to %g Hz in 256 logarithmic steps, f(s) = %g*10^(%gs/255).\n", lo, hi, lo, span)
	b.WriteString("var defaultTable = Table{\n")
	for s := 0; s < 256; s++ {
		f := lo * math.Pow(10, span*float64(s)/255)
		if f < floor {
			half := math.Floor(ref/(2*f) + 0.5)
			fmt.Fprintf(&b, "\t{SoftwareTimed, %d}, // %d: %.3f Hz\n", uint32(half), s, f)
			continue
		}
		inc := math.Max(1, math.Floor(f*(1<<(nco.AccumulatorBits+1))/ref+0.5))
		if inc > nco.MaxIncrement {
			return nil, fmt.Errorf("sample %d: %.0f Hz exceeds the NCO range", s, f)
		}
		fmt.Fprintf(&b, "\t{HardwareOscillator, %d}, // %d: %.3f Hz\n", uint32(inc), s, f)
	}
	b.WriteString("}\n")
	return format.Source(b.Bytes())
}
