//go:build windows

package cmd

import (
	"fmt"
	"os"
)

const ttyPath = "CONIN$"

// checkTTY verifies that the console is openable.
func checkTTY() error {
	f, err := os.Open(ttyPath)
	if err != nil {
		return fmt.Errorf("no console available: %w", err)
	}
	f.Close()
	return nil
}

func checkTERM() error {
	return nil
}

// checkTermWidth is a no-op on Windows; the UI clamps to whatever size the
// first WindowSizeMsg reports.
func checkTermWidth() error {
	return nil
}
