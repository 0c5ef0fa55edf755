//go:build !rp2040 && !rp2350

// Command clocksim runs the clock controller in virtual time on a simulated
// board: scripted scenarios, the frequency table and sample sweeps.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := NewRootCommand(os.Stdout)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "clocksim:", err)
		os.Exit(1)
	}
}
