// Command bmsparse is the command-line front end for the chart-parsing
// core: parse/unparse a chart, render its diagnostics, and export or
// stream it through the domain collaborators (MIDI, OSC, WAV probing).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
