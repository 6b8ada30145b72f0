// internal/logging/record.go
package logging

import (
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Record is the view of a log entry that filters inspect and rewrite.
// Filters must not keep a Record past the Evaluate call.
type Record struct {
	Module     string
	Level      zapcore.Level
	Message    string
	Time       time.Time
	LoggerName string
}

func newRecord(ent zapcore.Entry) *Record {
	return &Record{
		Module:     moduleName(ent),
		Level:      ent.Level,
		Message:    ent.Message,
		Time:       ent.Time,
		LoggerName: ent.LoggerName,
	}
}

// moduleName is the caller's file name without directory or extension,
// falling back to the logger name when the caller is unknown.
func moduleName(ent zapcore.Entry) string {
	if !ent.Caller.Defined || ent.Caller.File == "" {
		return ent.LoggerName
	}
	base := filepath.Base(ent.Caller.File)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
