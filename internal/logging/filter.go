// internal/logging/filter.go
package logging

import (
	"go.uber.org/zap/zapcore"
)

// Filter decides whether a record is emitted and may rewrite its message.
// The set of implementations is closed: DuplicateFilter and RedactingFilter.
type Filter interface {
	Evaluate(rec *Record) bool
	filter()
}

// runFilters evaluates filters in order and stops at the first rejection.
func runFilters(filters []Filter, rec *Record, m *Metrics) bool {
	for _, f := range filters {
		switch f := f.(type) {
		case *DuplicateFilter:
			if !f.Evaluate(rec) {
				m.suppressed(rec.LoggerName)
				return false
			}
		case *RedactingFilter:
			before := rec.Message
			f.Evaluate(rec)
			if rec.Message != before {
				m.redacted(rec.LoggerName)
			}
		}
	}
	return true
}

// filteredCore is a sink: a core with its own threshold and its own filters,
// applied after the logger-level filters have passed the entry.
type filteredCore struct {
	zapcore.Core
	filters []Filter
	metrics *Metrics
}

func newFilteredCore(core zapcore.Core, m *Metrics, filters ...Filter) *filteredCore {
	return &filteredCore{Core: core, filters: filters, metrics: m}
}

func (c *filteredCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(e.Level) {
		return ce
	}
	return ce.AddCore(e, c)
}

func (c *filteredCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	rec := newRecord(e)
	if !runFilters(c.filters, rec, c.metrics) {
		return nil
	}
	e.Message = rec.Message
	return c.Core.Write(e, fields)
}

// With keeps the same filter instances so child loggers share sink state.
func (c *filteredCore) With(fields []zapcore.Field) zapcore.Core {
	return &filteredCore{
		Core:    c.Core.With(fields),
		filters: c.filters,
		metrics: c.metrics,
	}
}
