//go:build !rp2040 && !rp2350

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clockgen-go/errcode"
	"clockgen-go/services/config"
	"clockgen-go/types"
)

const (
	ConfigOptionName = "config"
	BoardOptionName  = "board"
	FormatOptionName = "format"
)

type globals struct {
	configPath string
	board      string
	format     string
}

func NewRootCommand(out io.Writer) *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:           "clocksim",
		Short:         "Run the clock generator against a simulated board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(newRunCommand(g))
	cmd.AddCommand(newTableCommand(g))
	cmd.AddCommand(newSweepCommand(g))
	cmd.AddCommand(newConfigCommand(g))
	cmd.PersistentFlags().StringVar(&g.configPath, ConfigOptionName, "", "YAML board configuration; overrides --board")
	cmd.PersistentFlags().StringVar(&g.board, BoardOptionName, "sim", "Compiled-in board setup")
	cmd.PersistentFlags().StringVar(&g.format, FormatOptionName, "auto", "Output format: table, compact or auto")
	return cmd
}

func (g *globals) config() (types.ClockConfig, error) {
	if g.configPath != "" {
		return config.LoadYAML(g.configPath)
	}
	c, ok := config.BoardLookup(g.board)
	if !ok {
		return types.ClockConfig{}, errcode.New(errcode.Unsupported, "clocksim", "no setup for board "+g.board)
	}
	c = config.WithDefaults(c)
	return c, config.Validate(c)
}

// tabular reports whether output should be aligned columns. Auto picks
// columns for a terminal and one record per line otherwise.
func (g *globals) tabular(w io.Writer) (bool, error) {
	switch g.format {
	case "table":
		return true, nil
	case "compact":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	}
	return false, errcode.New(errcode.InvalidParams, "clocksim", "unknown format "+g.format)
}
