// internal/logging/dedup.go
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type recordKey struct {
	module  string
	level   zapcore.Level
	message string
}

// DuplicateFilter suppresses records identical to the previous one by
// (module, level, message). When a different record arrives after one or
// more suppressed duplicates, it first logs "Last log repeated N times."
// at WARNING to its notice logger.
//
// Structured fields are not compared.
type DuplicateFilter struct {
	mu      sync.Mutex
	last    *recordKey
	repeats int
	notices *zap.Logger
}

// NewDuplicateFilter returns a filter that reports repeat counts to notices.
// A nil notices logger discards them.
func NewDuplicateFilter(notices *zap.Logger) *DuplicateFilter {
	if notices == nil {
		notices = zap.NewNop()
	}
	return &DuplicateFilter{notices: notices}
}

// Evaluate reports whether rec should be emitted.
func (f *DuplicateFilter) Evaluate(rec *Record) bool {
	current := recordKey{module: rec.Module, level: rec.Level, message: rec.Message}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.last == nil || *f.last != current {
		if f.repeats > 0 {
			f.notices.Log(WarningLevel, fmt.Sprintf("Last log repeated %d times.", f.repeats))
		}
		f.last = &current
		f.repeats = 0
		return true
	}
	f.repeats++
	return false
}

// Repeats returns the number of duplicates suppressed since the last
// distinct record.
func (f *DuplicateFilter) Repeats() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.repeats
}

func (*DuplicateFilter) filter() {}
