package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
)

type Logger struct {
	isDebug bool
	out     io.Writer
}

func New(debug bool) *Logger {
	return NewWithWriter(debug, os.Stdout)
}

func NewWithWriter(debug bool, out io.Writer) *Logger {
	return &Logger{
		isDebug: debug,
		out:     out,
	}
}

func (l *Logger) Error(err string, reason string) {
	l.block("Error", color.New(color.FgRed), err, reason)
}

func (l *Logger) Info(info string, reason string) {
	l.block("Info", color.New(color.FgGreen), info, reason)
}

// Debug is a no-op unless the logger was created in debug mode.
func (l *Logger) Debug(msg string, reason string) {
	if !l.isDebug {
		return
	}
	l.block("Debug", color.New(color.FgCyan), msg, reason)
}

func (l *Logger) block(kind string, c *color.Color, msg string, reason string) {
	fmt.Fprintln(l.out, "-=-=-=-=--=-=-=-=-=-=--=-=-=-=-=-=-=-")
	c.Fprintf(l.out, "%s: %s\n", kind, msg)
	if l.isDebug {
		// skip block and the exported wrapper
		_, file, line, _ := runtime.Caller(2)
		color.New(color.FgYellow).Fprintf(l.out, "File: %s\n", file)
		color.New(color.FgBlue).Fprintf(l.out, "Line: %d\n", line)
	}
	color.New(color.FgGreen).Fprintf(l.out, "Reason: %s\n", reason)
	fmt.Fprintln(l.out, "-=-=-=-=--=-=-=-=-=-=--=-=-=-=-=-=-=-")
}
