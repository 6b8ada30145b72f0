// internal/logging/levels.go
package logging

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Severity ranks. These reuse zapcore.Level as the carrier type but do not
// follow zap's own numbering: ranks are spaced so SUCCESS and HASH fit
// between WARNING and ERROR. Only these constants should be passed to a
// simplelog Logger; zap's built-in levels (Debug=-1 .. Fatal=5) sort below
// DebugLevel here.
const (
	NotSetLevel   = zapcore.Level(0)
	DebugLevel    = zapcore.Level(10)
	InfoLevel     = zapcore.Level(20)
	WarningLevel  = zapcore.Level(30)
	SuccessLevel  = zapcore.Level(32)
	HashLevel     = zapcore.Level(33)
	ErrorLevel    = zapcore.Level(40)
	CriticalLevel = zapcore.Level(50)
)

var levelNames = map[zapcore.Level]string{
	NotSetLevel:   "NOTSET",
	DebugLevel:    "DEBUG",
	InfoLevel:     "INFO",
	WarningLevel:  "WARNING",
	SuccessLevel:  "SUCCESS",
	HashLevel:     "HASH",
	ErrorLevel:    "ERROR",
	CriticalLevel: "CRITICAL",
}

var levelsByName = map[string]zapcore.Level{
	"NOTSET":   NotSetLevel,
	"DEBUG":    DebugLevel,
	"INFO":     InfoLevel,
	"WARNING":  WarningLevel,
	"WARN":     WarningLevel,
	"SUCCESS":  SuccessLevel,
	"HASH":     HashLevel,
	"ERROR":    ErrorLevel,
	"CRITICAL": CriticalLevel,
	"FATAL":    CriticalLevel,
}

// LevelName returns the display name for a level, or "Level N" for ranks
// without a name.
func LevelName(l zapcore.Level) string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Level " + strconv.Itoa(int(l))
}

// ParseLevel parses a level name (case-insensitive) or an integer rank in
// [0, 127].
func ParseLevel(level string) (zapcore.Level, error) {
	s := strings.TrimSpace(level)
	if l, ok := levelsByName[strings.ToUpper(s)]; ok {
		return l, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return NotSetLevel, fmt.Errorf("%w: unknown level %q", ErrInvalidLevel, level)
	}
	if n < 0 || n > 127 {
		return NotSetLevel, fmt.Errorf("%w: rank %d out of range [0, 127]", ErrInvalidLevel, n)
	}
	return zapcore.Level(n), nil
}

// effectiveLevel maps NOTSET to the root default of WARNING.
func effectiveLevel(l zapcore.Level) zapcore.Level {
	if l == NotSetLevel {
		return WarningLevel
	}
	return l
}
