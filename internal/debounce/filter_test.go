package debounce

import "testing"

func run(f *Filter, raw []bool) []bool {
	out := make([]bool, len(raw))
	for i, r := range raw {
		out[i] = f.Tick(r)
	}
	return out
}

func TestMajorityTruthTable(t *testing.T) {
	for i := 0; i < 8; i++ {
		a, b, c := i&4 != 0, i&2 != 0, i&1 != 0
		n := 0
		for _, v := range []bool{a, b, c} {
			if v {
				n++
			}
		}
		if majority(a, b, c) != (n >= 2) {
			t.Fatalf("majority(%v,%v,%v) wrong", a, b, c)
		}
	}
}

func TestSingleTickGlitchIsIgnored(t *testing.T) {
	for _, level := range []bool{false, true} {
		f := NewFilter(level)
		// level, level, !level, level, level
		raw := []bool{level, level, !level, level, level}
		for i, got := range run(&f, raw) {
			if got != level {
				t.Fatalf("level=%v: output flipped at tick %d", level, i)
			}
		}
	}
}

func TestTwoConsecutiveSamplesConverge(t *testing.T) {
	for _, level := range []bool{false, true} {
		f := NewFilter(!level)
		f.Tick(level)
		if got := f.Tick(level); got != level {
			t.Fatalf("two %v samples did not converge by the second tick", level)
		}
	}
}

func TestReleaseScenarioFromStableHigh(t *testing.T) {
	f := NewFilter(true)
	raw := []bool{true, true, false, true, false, false, false, false}
	got := run(&f, raw)
	want := []bool{true, true, true, true, true, false, false, false}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tick %d: got %v want %v (all %v)", i, got[i], want[i], got)
		}
	}
	// The first 0 output must follow two consecutive 0 raw samples.
	for i, v := range got {
		if !v {
			if i < 1 || raw[i] || raw[i-1] {
				t.Fatalf("output fell at tick %d without two consecutive low samples", i)
			}
			break
		}
	}
}

func TestOutputFollowsPreviousStableWhenRawAgrees(t *testing.T) {
	// prevRaw differs, but raw matches the stable output: no change.
	f := NewFilter(false)
	f.Tick(true) // prevRaw=true, stable stays false
	if f.Tick(false) {
		t.Fatalf("raw agreeing with stable output must hold the output")
	}
}
