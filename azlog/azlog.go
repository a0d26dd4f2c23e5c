// Package azlog is the engine's single logging entry point. DSP, mixer,
// and backend code never import charmbracelet/log directly; they call
// azlog.Logf so the threshold and output format stay centralized.
package azlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Level is the engine's four-level threshold, ordered NONE < ERROR < INFO
// < TRACE.
type Level int

const (
	None Level = iota
	Error
	Info
	Trace
)

func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Info:
		return "info"
	case Trace:
		return "trace"
	default:
		return "none"
	}
}

var (
	logger    = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	threshold = Error
)

// Init reads AZAUDIO_LOG_LEVEL (case-insensitive none|error|info|trace) and
// seeds the threshold. Called from azaudio.Init()
// before any stream becomes active; unrecognized or unset values leave the
// threshold at its default (Error).
func Init() {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("AZAUDIO_LOG_LEVEL")))
	switch v {
	case "none":
		SetLevel(None)
	case "error":
		SetLevel(Error)
	case "info":
		SetLevel(Info)
	case "trace":
		SetLevel(Trace)
	}
}

// SetLevel changes the process-wide threshold. Safe to call at any time
// (log level is the one piece of process-wide state allowed to change
// after init).
func SetLevel(l Level) {
	threshold = l
	switch l {
	case Trace:
		logger.SetLevel(log.DebugLevel)
	case Info:
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(log.ErrorLevel)
	}
}

// CurrentLevel returns the active threshold.
func CurrentLevel() Level { return threshold }

// Logf logs at level if it is at or below the current threshold (TRACE
// messages are dropped unless the threshold is TRACE; NONE suppresses
// everything).
func Logf(level Level, format string, args ...any) {
	if level == None || level > threshold {
		return
	}
	msg := fmt.Sprintf(format, args...)
	switch level {
	case Error:
		logger.Error(msg)
	case Info:
		logger.Info(msg)
	case Trace:
		logger.Debug(msg)
	}
}
