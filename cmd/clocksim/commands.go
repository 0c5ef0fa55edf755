//go:build !rp2040 && !rp2350

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"clockgen-go/errcode"
	"clockgen-go/internal/freqtable"
	"clockgen-go/services/config"
	"clockgen-go/types"
	"clockgen-go/x/conv"
)

func hz(milliHz uint64) string { return string(conv.AppendHz(nil, milliHz)) }

func newRunCommand(g *globals) *cobra.Command {
	var (
		lines    []string
		sample   uint8
		duration time.Duration
	)
	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Run a scenario and report modes and measured frequency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			var sc Scenario
			if len(args) == 1 {
				if sc, err = LoadScenario(args[0]); err != nil {
					return err
				}
			}
			if len(lines) > 0 {
				sc.Script += "\n" + strings.Join(lines, "\n")
			}
			if cmd.Flags().Changed("sample") {
				sc.Sample = sample
			}
			if duration > 0 {
				sc.Duration = types.Duration(duration)
			}
			res, err := Simulate(cfg, sc)
			if err != nil {
				return err
			}
			tab, err := g.tabular(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return printRun(cmd.OutOrStdout(), res, tab)
		},
	}
	cmd.Flags().StringArrayVarP(&lines, "exec", "e", nil, "Script line, repeatable, appended to the scenario")
	cmd.Flags().Uint8Var(&sample, "sample", 0, "Control sample at power-up")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Minimum run time")
	return cmd
}

func printRun(w io.Writer, res *Result, tab bool) error {
	if tab {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "AT\tMODE")
		for _, m := range res.Modes {
			fmt.Fprintf(tw, "%v\t%s\n", time.Duration(m.TS)*time.Millisecond, m.Mode)
		}
		if len(res.Measurements) > 0 {
			fmt.Fprintln(tw, "\nFROM\tTO\tMODE\tSTATE\tRISING\tMEASURED\tSELECTED")
			for _, m := range res.Measurements {
				fmt.Fprintf(tw, "%v\t%v\t%s\t%s\t%d\t%s\t%s\n", m.From, m.To, m.Mode,
					m.Output.State, m.Rising, hz(m.MilliHz), hz(m.Output.MilliHz))
			}
		}
		fmt.Fprintf(tw, "\nEND\t%v\trising=%d\tswitches=%d\tpulses=%d\n",
			res.End, res.Rising, res.Stats.Switches, res.Stats.Pulses)
		return tw.Flush()
	}
	for _, m := range res.Modes {
		fmt.Fprintf(w, "mode at=%v %s\n", time.Duration(m.TS)*time.Millisecond, m.Mode)
	}
	for _, m := range res.Measurements {
		fmt.Fprintf(w, "measure from=%v to=%v mode=%s state=%s rising=%d measured=%s selected=%s\n",
			m.From, m.To, m.Mode, m.Output.State, m.Rising, hz(m.MilliHz), hz(m.Output.MilliHz))
	}
	_, err := fmt.Fprintf(w, "end at=%v rising=%d switches=%d pulses=%d\n",
		res.End, res.Rising, res.Stats.Switches, res.Stats.Pulses)
	return err
}

func newTableCommand(g *globals) *cobra.Command {
	var from, to uint8
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the frequency table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if from > to {
				return errcode.New(errcode.InvalidParams, "clocksim.table", "--from after --to")
			}
			tab, err := g.tabular(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			t := freqtable.Default()
			w := cmd.OutOrStdout()
			if tab {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintln(tw, "SAMPLE\tSTRATEGY\tPARAMETER\tFREQUENCY\t")
				for s := int(from); s <= int(to); s++ {
					e := t.Lookup(uint8(s))
					fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t\n", s, e.Strategy, e.Parameter, hz(e.FrequencyMilliHz()))
				}
				return tw.Flush()
			}
			for s := int(from); s <= int(to); s++ {
				e := t.Lookup(uint8(s))
				fmt.Fprintf(w, "%d %s %d %s\n", s, e.Strategy, e.Parameter, hz(e.FrequencyMilliHz()))
			}
			return nil
		},
	}
	cmd.Flags().Uint8Var(&from, "from", 0, "First sample")
	cmd.Flags().Uint8Var(&to, "to", 255, "Last sample")
	return cmd
}

// Transition is a strategy change seen while sweeping.
type Transition struct {
	Sample   uint8
	From, To string
	MilliHz  uint64
	At       time.Duration
}

// Sweep ramps the control input and reports each strategy change the
// running controller made.
func Sweep(cfg types.ClockConfig, from, to, step uint8, dwell time.Duration) ([]Transition, *Result, error) {
	if step == 0 || from > to || dwell <= 0 {
		return nil, nil, errcode.New(errcode.InvalidParams, "clocksim.Sweep", "bad sweep range")
	}
	var sb strings.Builder
	for s := int(from); s <= int(to); s += int(step) {
		sb.WriteString("adc " + strconv.Itoa(s) + "\nwait " + dwell.String() + "\n")
	}
	res, err := Simulate(cfg, Scenario{Sample: from, Script: sb.String()})
	if err != nil {
		return nil, nil, err
	}
	var out []Transition
	prev := ""
	for _, o := range res.Outputs {
		if o.State == "halted" {
			continue
		}
		if prev != "" && o.Strategy != prev {
			out = append(out, Transition{
				Sample: o.Sample, From: prev, To: o.Strategy,
				MilliHz: o.MilliHz, At: time.Duration(o.TS) * time.Millisecond,
			})
		}
		prev = o.Strategy
	}
	return out, res, nil
}

// tableBoundaries lists the samples in [from, to] whose strategy differs from
// the sample before.
func tableBoundaries(from, to uint8) []uint8 {
	t := freqtable.Default()
	var out []uint8
	for s := int(from) + 1; s <= int(to); s++ {
		if t.Lookup(uint8(s)).Strategy != t.Lookup(uint8(s-1)).Strategy {
			out = append(out, uint8(s))
		}
	}
	return out
}

func newSweepCommand(g *globals) *cobra.Command {
	var (
		from, to, step uint8
		dwell          time.Duration
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Ramp the control input and report strategy switches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			trs, res, err := Sweep(cfg, from, to, step, dwell)
			if err != nil {
				return err
			}
			tab, err := g.tabular(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if tab {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "AT\tSAMPLE\tFROM\tTO\tFREQUENCY")
				for _, tr := range trs {
					fmt.Fprintf(tw, "%v\t%d\t%s\t%s\t%s\n", tr.At, tr.Sample, tr.From, tr.To, hz(tr.MilliHz))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			} else {
				for _, tr := range trs {
					fmt.Fprintf(w, "switch at=%v sample=%d %s->%s %s\n", tr.At, tr.Sample, tr.From, tr.To, hz(tr.MilliHz))
				}
			}
			fmt.Fprintf(w, "table boundaries %v, %d switches, %d reconfigurations\n",
				tableBoundaries(from, to), res.Stats.Switches, res.Stats.Reconfigs)
			return nil
		},
	}
	cmd.Flags().Uint8Var(&from, "from", 0, "First sample")
	cmd.Flags().Uint8Var(&to, "to", 255, "Last sample")
	cmd.Flags().Uint8Var(&step, "step", 2, "Sample increment; steps of 1 fall inside the deadband")
	cmd.Flags().DurationVar(&dwell, "dwell", 50*time.Millisecond, "Time spent at each sample")
	return cmd
}

func newConfigCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective board configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			b, err := config.MarshalYAML(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
