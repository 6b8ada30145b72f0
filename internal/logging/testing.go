// internal/logging/testing.go
package logging

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger wraps Logger with test observation capabilities. Its single
// sink behaves like the console sink (its own DuplicateFilter, no
// threshold) and records into an observer instead of writing.
type TestLogger struct {
	*Logger
	observed *observer.ObservedLogs
	notices  *observer.ObservedLogs
}

// NewTestLogger creates a logger for testing with full observation. A nil
// cfg means NewDefaultConfig. Panics if cfg is invalid.
func NewTestLogger(cfg *Config) *TestLogger {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		panic("logging: " + err.Error())
	}

	noticeCore, notices := observer.New(NotSetLevel)
	noticeLogger := zap.New(noticeCore, zap.AddStacktrace(noStacktrace))

	filters := []Filter{NewDuplicateFilter(noticeLogger)}
	if cfg.MaskSensitive {
		rf, err := NewRedactingFilter(cfg.sensitivePatterns(), cfg.MaskCaseInsensitive)
		if err != nil {
			panic("logging: " + err.Error())
		}
		filters = append(filters, rf)
	}

	core, observed := observer.New(NotSetLevel)
	return &TestLogger{
		Logger: &Logger{
			name:    "test",
			level:   effectiveLevel(level),
			core:    newFilteredCore(core, nil, NewDuplicateFilter(noticeLogger)),
			filters: filters,
		},
		observed: observed,
		notices:  notices,
	}
}

// All returns all logged entries.
func (t *TestLogger) All() []observer.LoggedEntry {
	return t.observed.All()
}

// Notices returns the duplicate-filter notices.
func (t *TestLogger) Notices() []observer.LoggedEntry {
	return t.notices.All()
}

// FilterMessage returns entries matching message substring.
func (t *TestLogger) FilterMessage(msg string) *observer.ObservedLogs {
	return t.observed.FilterMessageSnippet(msg)
}

// Reset clears all logged entries and notices. Filter state is kept.
func (t *TestLogger) Reset() {
	t.observed.TakeAll()
	t.notices.TakeAll()
}

// AssertLogged verifies a log at level containing message was logged.
func (t *TestLogger) AssertLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msgContains) {
			return
		}
	}
	tb.Errorf("expected log at %s containing %q, logs: %+v", LevelName(level), msgContains, t.observed.All())
}

// AssertNotLogged verifies no log at level containing message was logged.
func (t *TestLogger) AssertNotLogged(tb testing.TB, level zapcore.Level, msgContains string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		if entry.Level == level && strings.Contains(entry.Message, msgContains) {
			tb.Errorf("unexpected log at %s containing %q", LevelName(level), msgContains)
		}
	}
}

// AssertNoSecrets verifies none of the given values leaked into a message
// or a string field.
func (t *TestLogger) AssertNoSecrets(tb testing.TB, secrets ...string) {
	tb.Helper()
	for _, entry := range t.observed.All() {
		for _, s := range secrets {
			if strings.Contains(entry.Message, s) {
				tb.Errorf("secret %q in message: %q", s, entry.Message)
			}
			for _, field := range entry.Context {
				if field.Type == zapcore.StringType && strings.Contains(field.String, s) {
					tb.Errorf("secret %q in field %q: %q", s, field.Key, field.String)
				}
			}
		}
	}
}
