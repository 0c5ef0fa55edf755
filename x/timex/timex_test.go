package timex

import (
	"testing"
	"time"
)

func TestCyclesToDuration(t *testing.T) {
	const fosc = 24_000_000
	if d := CyclesToDuration(240, fosc); d != 10*time.Microsecond {
		t.Fatalf("240 cycles @24MHz = %v, want 10us", d)
	}
	if d := CyclesToDuration(12_000_000, fosc); d != 500*time.Millisecond {
		t.Fatalf("12M cycles @24MHz = %v, want 500ms", d)
	}
	if d := CyclesToDuration(1, 0); d != time.Second {
		t.Fatalf("hz=0 should behave as 1 Hz, got %v", d)
	}
}

func TestDurationToCycles(t *testing.T) {
	const fosc = 24_000_000
	if c := DurationToCycles(10*time.Millisecond, fosc); c != 240_000 {
		t.Fatalf("10ms @24MHz = %d cycles", c)
	}
	if c := DurationToCycles(-time.Second, fosc); c != 0 {
		t.Fatalf("negative durations give 0 cycles, got %d", c)
	}
}
