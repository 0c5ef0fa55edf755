package main

import (
	"bytes"
	"testing"
)

func TestGenerateMatchesCheckedInTable(t *testing.T) {
	src, err := generate(24_000_000, 1, 1_000_000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, want := range []string{
		"{SoftwareTimed, 12000000}",
		"// 44: 10.847 Hz",
		"{HardwareOscillator, 87381}",
	} {
		if !bytes.Contains(src, []byte(want)) {
			t.Fatalf("generated table lacks %q", want)
		}
	}
}

func TestGenerateRejectsBadRanges(t *testing.T) {
	if _, err := generate(24_000_000, 0, 10); err == nil {
		t.Fatalf("zero lower bound accepted")
	}
	if _, err := generate(24_000_000, 1, 50_000_000); err == nil {
		t.Fatalf("range beyond the NCO accepted")
	}
}
