package texttest

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Logger receives progress and report messages. Log with no arguments logs a
// blank line. *testing.T and *testing.B satisfy Logger.
type Logger interface {
	Log(args ...any)
}

// ConsoleLogger writes one line per Log call.
type ConsoleLogger struct {
	w io.Writer
}

// NewConsoleLogger returns a ConsoleLogger writing to w. A nil w writes to
// color.Output, which is stdout with Windows colour support.
func NewConsoleLogger(w io.Writer) *ConsoleLogger {
	if w == nil {
		w = color.Output
	}
	return &ConsoleLogger{w: w}
}

// Log implements Logger. Operands are formatted as by fmt.Println.
func (l *ConsoleLogger) Log(args ...any) {
	fmt.Fprintln(l.w, args...)
}
