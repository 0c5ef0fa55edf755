// Package clock runs the clock controller on a board and reports its state on
// the bus:
//
//	clock/state/mode    types.ModeValue    (retained)
//	clock/state/output  types.OutputValue  (retained)
//	clock/state/stats   types.StatsValue   (retained)
//	clock/status        types.ServiceState (retained)
//	clock/cmd/status    request; replied with the current types.OutputValue
package clock

import (
	"context"
	"sync"

	"clockgen-go/bus"
	"clockgen-go/internal/control"
	"clockgen-go/internal/debounce"
	"clockgen-go/internal/output"
	"clockgen-go/internal/platform"
	"clockgen-go/types"
)

var (
	TopicMode    = bus.T("clock", "state", "mode")
	TopicOutput  = bus.T("clock", "state", "output")
	TopicStats   = bus.T("clock", "state", "stats")
	TopicStatus  = bus.T("clock", "status")
	TopicCommand = bus.T("clock", "cmd", "status")
)

type Service struct {
	hw  *platform.Hardware
	cfg types.ClockConfig

	mu       sync.Mutex
	conn     *bus.Connection
	last     control.Status
	haveLast bool
	lastMode control.Mode
}

func New(h *platform.Hardware, cfg types.ClockConfig) *Service {
	return &Service{hw: h, cfg: cfg}
}

// Start runs the service in its own goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go func() {
		if err := s.Run(ctx, conn); err != nil && err != context.Canceled {
			println("[clock]", err.Error())
		}
	}()
	return nil
}

// Run drives the output until ctx is cancelled. The control loop runs on the
// calling goroutine; status requests are answered from a helper goroutine.
func (s *Service) Run(ctx context.Context, conn *bus.Connection) error {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	s.publishState("starting", "ok")

	reqs := conn.Subscribe(TopicCommand)
	go s.serve(ctx, conn, reqs)

	t := s.cfg.Timing
	gen := output.New(s.hw.Line, s.hw.Osc, s.hw.Clock, output.Timing{CheckInterval: t.CheckInterval().D()})
	btn := debounce.NewButton(s.hw.Button)
	btn.Start(s.hw.Ticks, t.DebounceTick.D())
	defer btn.Stop()

	ctl := control.New(gen, btn,
		control.Inputs{Halt: s.hw.Halt, Step: s.hw.Step, Control: s.hw.Control},
		s.hw.Indicator, s.hw.Clock,
		control.Config{
			Timing: control.Timing{
				HaltPoll:      t.HaltPoll.D(),
				StepPoll:      t.StepPoll.D(),
				PulseWidth:    t.PulseWidth.D(),
				ReleaseSettle: t.ReleaseSettle.D(),
				HardwarePoll:  t.HardwarePoll.D(),
				Blink:         t.Blink.D(),
			},
			OnChange: s.onChange,
		})

	s.publishState("running", "ok")
	err := ctl.Run(ctx)
	s.onChange(ctl.Status())
	s.publishState("stopped", "ok")
	return err
}

// Last returns the most recent controller status.
func (s *Service) Last() (control.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.haveLast
}

func (s *Service) onChange(st control.Status) {
	s.mu.Lock()
	modeChanged := !s.haveLast || st.Mode != s.lastMode
	s.last, s.haveLast, s.lastMode = st, true, st.Mode
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}
	if modeChanged {
		conn.Publish(conn.NewMessage(TopicMode, ModeValue(st), true))
	}
	conn.Publish(conn.NewMessage(TopicOutput, OutputValue(st), true))
	conn.Publish(conn.NewMessage(TopicStats, StatsValue(st), true))
}

func (s *Service) serve(ctx context.Context, conn *bus.Connection, reqs *bus.Subscription) {
	defer conn.Unsubscribe(reqs)
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-reqs.Channel():
			if !ok {
				return
			}
			st, have := s.Last()
			if !have {
				conn.Reply(m, types.ServiceState{Level: "starting"}, false)
				continue
			}
			conn.Reply(m, OutputValue(st), false)
		}
	}
}

func (s *Service) publishState(level, status string) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	ts := int64(0)
	if s.hw.Clock != nil {
		ts = s.hw.Clock.Now().Milliseconds()
	}
	conn.Publish(conn.NewMessage(TopicStatus, types.ServiceState{Level: level, Status: status, TS: ts}, true))
}

// ---- payloads ----

func ModeValue(st control.Status) types.ModeValue {
	return types.ModeValue{Mode: st.Mode.String(), TS: st.At.Milliseconds()}
}

func OutputValue(st control.Status) types.OutputValue {
	return types.OutputValue{
		State:     st.Output.State.String(),
		Strategy:  st.Spec.Strategy.String(),
		Parameter: st.Spec.Parameter,
		Sample:    st.Sample,
		MilliHz:   st.Spec.FrequencyMilliHz(),
		Connected: st.Output.Source == output.SourceOscillator,
		TS:        st.At.Milliseconds(),
	}
}

func StatsValue(st control.Status) types.StatsValue {
	return types.StatsValue{
		Switches:   st.Stats.Switches,
		Reconfigs:  st.Stats.Reconfigs,
		HalfCycles: st.Stats.HalfCycles,
		Aborts:     st.Stats.Aborts,
		Pulses:     st.Stats.Pulses,
		TS:         st.At.Milliseconds(),
	}
}
