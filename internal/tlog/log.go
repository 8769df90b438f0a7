// Package tlog is a toggled logger for the xattr library. Everything
// interesting about a call is reported through its error value; tlog
// only exists to make the buffer-retry slow path and other rare kernel
// interactions observable. The Debug channel is off by default and can
// be enabled with the GOXATTR_DEBUG environment variable.
package tlog

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

const programName = "goxattr"

// Escape sequences for terminal colors. These are set in init() if and
// only if stderr is a terminal. Otherwise they are empty strings.
var (
	colorReset  string
	colorGrey   string
	colorYellow string
)

// toggledLogger - a Logger that can be enabled and disabled
type toggledLogger struct {
	// Enable or disable output
	Enabled bool
	// Private prefix and postfix are used for coloring
	prefix  string
	postfix string

	*log.Logger
}

func (l *toggledLogger) Printf(format string, v ...interface{}) {
	if !l.Enabled {
		return
	}
	l.Logger.Printf(l.prefix + fmt.Sprintf(format, v...) + l.postfix)
}

// Debug logs the buffer sizing protocol and target resolution.
// Disabled by default, enabled by setting GOXATTR_DEBUG.
var Debug *toggledLogger

// Warn logs conditions that do not fail the call by themselves but
// indicate that something external is misbehaving, like a filesystem
// reporting inconsistent attribute sizes.
var Warn *toggledLogger

func init() {
	if terminal.IsTerminal(int(os.Stderr.Fd())) {
		colorReset = "\033[0m"
		colorGrey = "\033[2m"
		colorYellow = "\033[33m"
	}

	Debug = &toggledLogger{
		Logger:  log.New(os.Stderr, programName+": ", 0),
		prefix:  colorGrey,
		postfix: colorReset,
	}
	Warn = &toggledLogger{
		Enabled: true,
		Logger:  log.New(os.Stderr, programName+": ", 0),
		prefix:  colorYellow,
		postfix: colorReset,
	}
	if os.Getenv("GOXATTR_DEBUG") != "" {
		Debug.Enabled = true
	}
}
