//go:build !windows

package cmd

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"
)

const ttyPath = "/dev/tty"

// minColumns is the narrowest terminal the three-panel layout fits in.
const minColumns = 40

// checkTTY verifies that the controlling terminal is openable.
func checkTTY() error {
	f, err := os.Open(ttyPath)
	if err != nil {
		return fmt.Errorf("no TTY available: %w", err)
	}
	f.Close()
	return nil
}

// checkTERM verifies that the TERM environment variable is not "dumb".
func checkTERM() error {
	if os.Getenv("TERM") == "dumb" {
		return fmt.Errorf("TERM=dumb is not supported")
	}
	return nil
}

// checkTermWidth verifies the terminal is wide enough for the layout.
func checkTermWidth() error {
	f, err := os.Open(ttyPath)
	if err != nil {
		return fmt.Errorf("cannot check terminal width: %w", err)
	}
	defer f.Close()

	var ws struct {
		Row    uint16
		Col    uint16
		Xpixel uint16
		Ypixel uint16
	}

	_, _, errno := syscall.Syscall(
		syscall.SYS_IOCTL,
		f.Fd(),
		syscall.TIOCGWINSZ,
		uintptr(unsafe.Pointer(&ws)), //nolint:gosec // G103: unsafe.Pointer required for ioctl syscall
	)
	if errno != 0 {
		return fmt.Errorf("cannot get terminal size: %w", errno)
	}

	if ws.Col < minColumns {
		return fmt.Errorf("terminal too narrow (%d columns, need at least %d)", ws.Col, minColumns)
	}
	return nil
}
