package nexuslog

import (
	"errors"
	"strings"
)

// Level represents the severity of a log entry. Levels are totally ordered;
// a handle drops any entry whose level is below its configured minimum.
//
// Levels are ordered from least to most severe:
// - Trace: fine-grained diagnostic detail
// - Debug: detailed information useful during development
// - Info: general operational information
// - Warn: potentially harmful situations
// - Error: serious problems
type Level int8

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
)

// String returns the short uppercase textual form used in the output
// record's level= field.
func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a case-insensitive string to its Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(level) {
	case "TRACE":
		return Trace, nil
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARN", "WARNING":
		return Warn, nil
	case "ERROR":
		return Error, nil
	default:
		return Debug, errors.New("nexuslog: invalid log level: " + level)
	}
}
