package heartbeat

import (
	"context"
	"time"

	"clockgen-go/bus"
	"clockgen-go/types"
	"clockgen-go/x/conv"
	"clockgen-go/x/mathx"
	"clockgen-go/x/strx"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicClockState      = bus.T("clock", "state", "+")
)

const (
	defaultInterval = time.Second
	minInterval     = 100 * time.Millisecond
	maxInterval     = time.Minute
)

// Service prints a periodic one-line summary of the retained clock state.
type Service struct {
	// Print receives each status line; nil uses println.
	Print func(line string)

	mode  types.ModeValue
	out   types.OutputValue
	stats types.StatsValue
	seen  bool
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	stateSub := conn.Subscribe(topicClockState)
	defer conn.Unsubscribe(stateSub)

	tick := time.NewTicker(defaultInterval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			s.emit(s.Line())
		case msg := <-cfgSub.Channel():
			if c, ok := msg.Payload.(types.HeartbeatConfig); ok && c.Interval > 0 {
				d := mathx.Clamp(c.Interval.D(), minInterval, maxInterval)
				tick.Reset(d)
				println("[heartbeat] interval", d.String())
			}
		case msg := <-stateSub.Channel():
			s.Observe(msg.Payload)
		}
	}
}

// Observe folds one clock state payload into the summary.
func (s *Service) Observe(payload any) {
	switch v := payload.(type) {
	case types.ModeValue:
		s.mode, s.seen = v, true
	case types.OutputValue:
		s.out, s.seen = v, true
	case types.StatsValue:
		s.stats = v
	}
}

// Line renders the current summary, e.g.
// "[heartbeat] run hardware 225.034Hz sample=100 switches=1 pulses=0".
func (s *Service) Line() string {
	b := make([]byte, 0, 96)
	b = append(b, "[heartbeat] "...)
	if !s.seen {
		return string(append(b, "waiting for clock"...))
	}
	b = append(b, strx.Coalesce(s.mode.Mode, "?")...)
	b = append(b, ' ')
	b = append(b, strx.Coalesce(s.out.State, "?")...)
	b = append(b, ' ')
	b = conv.AppendHz(b, s.out.MilliHz)
	b = append(b, " sample="...)
	b = conv.AppendUint(b, uint64(s.out.Sample))
	b = append(b, " switches="...)
	b = conv.AppendUint(b, uint64(s.stats.Switches))
	b = append(b, " pulses="...)
	b = conv.AppendUint(b, uint64(s.stats.Pulses))
	return string(b)
}

func (s *Service) emit(line string) {
	if s.Print != nil {
		s.Print(line)
		return
	}
	println(line)
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
