//go:build !rp2040 && !rp2350

package main

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"sigs.k8s.io/yaml"

	"clockgen-go/bus"
	"clockgen-go/errcode"
	"clockgen-go/internal/platform"
	"clockgen-go/internal/platform/sim"
	"clockgen-go/services/clock"
	"clockgen-go/types"
	"clockgen-go/x/mathx"
)

// Scenario is a timeline of input changes applied to a simulated board.
//
// Script lines are tokenised like a shell. A cursor starts at zero; only wait
// and measure move it:
//
//	adc 120          set the control input
//	halt on|off      halt select switch
//	step on|off      step select switch
//	press 40ms       bouncy step button press held for 40ms
//	wait 500ms       move the cursor
//	measure 1s       count rising edges over the next second
type Scenario struct {
	Sample   uint8          `json:"sample"`
	Duration types.Duration `json:"duration,omitempty"` // default: end of script
	Script   string         `json:"script"`
}

// Measurement is the output seen over one measure window.
type Measurement struct {
	From, To time.Duration
	Rising   uint64
	MilliHz  uint64
	Mode     string
	Output   types.OutputValue
}

// Result summarises one simulated run.
type Result struct {
	End          time.Duration
	Modes        []types.ModeValue
	Outputs      []types.OutputValue
	Measurements []Measurement
	Final        types.OutputValue
	Stats        types.StatsValue
	Rising       uint64
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, errcode.Wrap(errcode.IOError, "clocksim.LoadScenario", err)
	}
	return ParseScenario(b)
}

func ParseScenario(b []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.UnmarshalStrict(b, &sc); err != nil {
		return Scenario{}, errcode.Wrap(errcode.InvalidScenario, "clocksim.ParseScenario", err)
	}
	if _, _, err := sc.plan(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// action runs on the simulated clock at a fixed virtual time.
type action struct {
	at time.Duration
	do func(*runner)
}

func scenarioErr(line int, msg string) error {
	return errcode.New(errcode.InvalidScenario, "clocksim.script", "line "+strconv.Itoa(line)+": "+msg)
}

// plan turns the script into timed actions and returns when the run ends.
func (sc Scenario) plan() ([]action, time.Duration, error) {
	var (
		acts   []action
		cursor time.Duration
	)
	for i, raw := range strings.Split(sc.Script, "\n") {
		line := i + 1
		words, err := shlex.Split(raw)
		if err != nil {
			return nil, 0, scenarioErr(line, err.Error())
		}
		if len(words) == 0 {
			continue
		}
		if len(words) != 2 {
			return nil, 0, scenarioErr(line, "want a command and one argument")
		}
		cmd, arg := words[0], words[1]
		at := cursor
		switch cmd {
		case "adc":
			v, err := strconv.ParseUint(arg, 0, 8)
			if err != nil {
				return nil, 0, scenarioErr(line, "adc wants 0..255")
			}
			acts = append(acts, action{at, func(r *runner) { r.b.ADC.Set(uint8(v)) }})
		case "halt", "step":
			on, err := onOff(arg)
			if err != nil {
				return nil, 0, scenarioErr(line, err.Error())
			}
			if cmd == "halt" {
				acts = append(acts, action{at, func(r *runner) { r.b.Halt.Set(on) }})
			} else {
				acts = append(acts, action{at, func(r *runner) { r.b.Step.Set(on) }})
			}
		case "press", "wait", "measure":
			d, err := time.ParseDuration(arg)
			if err != nil || d <= 0 {
				return nil, 0, scenarioErr(line, cmd+" wants a positive duration")
			}
			switch cmd {
			case "press":
				acts = append(acts, action{at, func(r *runner) { r.b.Press(r.b.Clock.Now(), d) }})
			case "wait":
				cursor += d
			case "measure":
				acts = append(acts, measure(at, d)...)
				cursor += d
			}
		default:
			return nil, 0, scenarioErr(line, "unknown command "+strconv.Quote(cmd))
		}
	}
	end := mathx.Max(cursor, sc.Duration.D())
	if end <= 0 {
		return nil, 0, errcode.New(errcode.InvalidScenario, "clocksim.script", "scenario has no duration")
	}
	return acts, end, nil
}

func onOff(s string) (bool, error) {
	switch s {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, errcode.New(errcode.InvalidScenario, "clocksim.script", "want on or off")
}

// measure counts rising edges over [at, at+d).
func measure(at, d time.Duration) []action {
	var start uint64
	return []action{
		{at, func(r *runner) { _, start = r.b.Pin.Edges() }},
		{at + d, func(r *runner) {
			_, now := r.b.Pin.Edges()
			m := Measurement{From: at, To: at + d, Rising: now - start}
			if us := uint64(d / time.Microsecond); us > 0 {
				m.MilliHz = mathx.RoundDiv(m.Rising*1_000_000_000, us)
			}
			if st, ok := r.svc.Last(); ok {
				m.Mode = st.Mode.String()
				m.Output = clock.OutputValue(st)
			}
			r.res.Measurements = append(r.res.Measurements, m)
		}},
	}
}

type runner struct {
	b   *sim.Board
	svc *clock.Service
	res *Result
}

// Simulate runs the clock service on a simulated board until the scenario
// ends. The run finishes at the first controller check point after the end.
func Simulate(cfg types.ClockConfig, sc Scenario) (*Result, error) {
	acts, end, err := sc.plan()
	if err != nil {
		return nil, err
	}
	h, b, err := platform.BuildSim(cfg, sc.Sample)
	if err != nil {
		return nil, err
	}
	r := &runner{b: b, svc: clock.New(h, cfg), res: &Result{}}

	bs := bus.NewBus(1024)
	conn := bs.NewConnection("clocksim")
	modes := conn.Subscribe(clock.TopicMode)
	outputs := conn.Subscribe(clock.TopicOutput)

	for _, a := range acts {
		a := a
		b.Clock.At(a.at, func() { a.do(r) })
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b.Clock.At(end, cancel)

	if err := r.svc.Run(ctx, conn); err != nil && err != context.Canceled {
		return nil, err
	}

	for len(modes.Channel()) > 0 {
		r.res.Modes = append(r.res.Modes, (<-modes.Channel()).Payload.(types.ModeValue))
	}
	for len(outputs.Channel()) > 0 {
		r.res.Outputs = append(r.res.Outputs, (<-outputs.Channel()).Payload.(types.OutputValue))
	}
	if st, ok := r.svc.Last(); ok {
		r.res.Final = clock.OutputValue(st)
		r.res.Stats = clock.StatsValue(st)
	}
	_, r.res.Rising = b.Pin.Edges()
	r.res.End = b.Clock.Now()
	return r.res, nil
}
