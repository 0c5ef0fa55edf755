package heartbeat

import (
	"context"
	"strings"
	"testing"
	"time"

	"clockgen-go/bus"
	"clockgen-go/types"
)

func TestLineBeforeAnyState(t *testing.T) {
	var s Service
	if got := s.Line(); got != "[heartbeat] waiting for clock" {
		t.Fatalf("line %q", got)
	}
}

func TestLineSummarisesState(t *testing.T) {
	var s Service
	s.Observe(types.ModeValue{Mode: "run"})
	s.Observe(types.OutputValue{State: "hardware", MilliHz: 225_034, Sample: 100})
	s.Observe(types.StatsValue{Switches: 1, Pulses: 3})
	s.Observe("ignored")
	want := "[heartbeat] run hardware 225.034Hz sample=100 switches=1 pulses=3"
	if got := s.Line(); got != want {
		t.Fatalf("line %q\nwant %q", got, want)
	}
}

func TestServiceFollowsBus(t *testing.T) {
	b := bus.NewBus(8)
	conn := b.NewConnection("heartbeat")
	pub := b.NewConnection("clock")

	lines := make(chan string, 16)
	s := &Service{Print: func(l string) { lines <- l }}

	pub.Publish(pub.NewMessage(bus.T("config", "heartbeat"),
		types.HeartbeatConfig{Interval: types.Duration(20 * time.Millisecond)}, true))
	pub.Publish(pub.NewMessage(bus.T("clock", "state", "mode"), types.ModeValue{Mode: "halt"}, true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_ = s.Start(ctx, conn)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case l := <-lines:
			if strings.Contains(l, " halt ") {
				return
			}
		case <-deadline:
			t.Fatalf("no heartbeat reflecting the retained mode")
		}
	}
}
