// Package main is the entry point for the snapview TUI.
package main

import (
	"os"

	"github.com/runger/snapview/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
