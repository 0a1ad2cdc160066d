// Package notify is the toast equivalent: short user-facing status
// lines, separate from the structured log.
package notify

import (
	"fmt"
	"io"
)

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
)

// Console writes colored one-liners to the terminal.
type Console struct {
	Out io.Writer
}

func (c *Console) Success(msg string) {
	fmt.Fprintf(c.Out, "%s✔ %s%s\n", colorGreen, msg, colorReset)
}

func (c *Console) Error(msg string) {
	fmt.Fprintf(c.Out, "%s✖ %s%s\n", colorRed, msg, colorReset)
}

// Nop discards notifications; used by tests that only assert state.
type Nop struct{}

func (Nop) Success(string) {}
func (Nop) Error(string)   {}
