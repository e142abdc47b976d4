package flysystem

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogFormat selects how log lines are rendered
type LogFormat string

const (
	// LogFormatConsole renders human-readable lines
	LogFormatConsole LogFormat = "console"
	// LogFormatJSON renders one JSON object per line
	LogFormatJSON LogFormat = "json"
)

// ParseLogFormat parses "console" or "json"; empty means console.
func ParseLogFormat(s string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(strings.TrimSpace(s))) {
	case LogFormatConsole, "":
		return LogFormatConsole, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	default:
		return "", fmt.Errorf("invalid log format %q: expected %q or %q", s, LogFormatConsole, LogFormatJSON)
	}
}

// NewLogger creates a console logger at level writing to w. Every line
// carries lib=flysystem.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return NewLoggerWithFormat(w, level, LogFormatConsole)
}

// NewLoggerWithFormat creates a logger rendering lines in format.
func NewLoggerWithFormat(w io.Writer, level zerolog.Level, format LogFormat) zerolog.Logger {
	out := w
	if format != LogFormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("lib", "flysystem").
		Logger()
}

// testLevels maps test verbosity to a level; anything above is trace.
var testLevels = []zerolog.Level{zerolog.WarnLevel, zerolog.InfoLevel, zerolog.DebugLevel}

// NewTestLogger creates a console logger for tests: verbosity 0 is warn,
// 1 info, 2 debug and higher trace.
func NewTestLogger(w io.Writer, verbose int) zerolog.Logger {
	level := zerolog.TraceLevel
	if verbose >= 0 && verbose < len(testLevels) {
		level = testLevels[verbose]
	}
	return NewLogger(w, level)
}

// LogLevelFromString parses a level name case-insensitively. "warning"
// is accepted for warn; an empty string is rejected.
func LogLevelFromString(levelStr string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(levelStr))
	if name == "warning" {
		name = "warn"
	}
	if name == "" {
		return zerolog.NoLevel, fmt.Errorf("empty log level")
	}
	return zerolog.ParseLevel(name)
}

// DefaultLogger is what an adapter logs to unless configured: warnings
// and errors only, on stderr.
func DefaultLogger() zerolog.Logger {
	return NewLogger(os.Stderr, zerolog.WarnLevel)
}
