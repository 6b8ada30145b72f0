// internal/logging/logger.go
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// callerSkip skips runtime.Caller, Logger.log and the exported method.
const callerSkip = 2

// Logger is a named logger with a severity threshold, logger-level filters
// and one or more sinks.
type Logger struct {
	name    string
	level   zapcore.Level
	core    zapcore.Core
	filters []Filter
	metrics *Metrics
	files   *fileSet
}

// fileSet closes file sinks once, however many child loggers share them.
type fileSet struct {
	once    sync.Once
	closers []io.Closer
	err     error
}

func (s *fileSet) close() error {
	if s == nil {
		return nil
	}
	s.once.Do(func() {
		for _, c := range s.closers {
			s.err = multierr.Append(s.err, c.Close())
		}
	})
	return s.err
}

// newLogger builds a logger from cfg. Filters run in this order: the
// logger's DuplicateFilter, then the RedactingFilter when masking is on.
func newLogger(name string, cfg *Config, notices *zap.Logger, m *Metrics) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	filters := []Filter{NewDuplicateFilter(notices)}
	if cfg.MaskSensitive {
		rf, err := NewRedactingFilter(cfg.sensitivePatterns(), cfg.MaskCaseInsensitive)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		filters = append(filters, rf)
	}

	core, closers, err := newSinks(cfg, level, notices, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create sinks for logger %q: %w", name, err)
	}

	return &Logger{
		name:    name,
		level:   effectiveLevel(level),
		core:    core,
		filters: filters,
		metrics: m,
		files:   &fileSet{closers: closers},
	}, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{level: CriticalLevel, core: zapcore.NewNopCore()}
}

func (l *Logger) log(ctx context.Context, lvl zapcore.Level, msg string, fields []zap.Field) {
	if !l.Enabled(lvl) {
		return
	}
	ent := zapcore.Entry{
		LoggerName: l.name,
		Time:       time.Now(),
		Level:      lvl,
		Message:    msg,
		Caller:     zapcore.NewEntryCaller(runtime.Caller(callerSkip)),
	}

	rec := newRecord(ent)
	if !runFilters(l.filters, rec, l.metrics) {
		return
	}
	l.metrics.record(l.name, lvl)
	ent.Message = rec.Message

	ce := l.core.Check(ent, nil)
	if ce == nil {
		return
	}
	ce.ErrorOutput = zapcore.Lock(os.Stderr)
	ce.Write(append(correlationFields(ctx), fields...)...)
}

func (l *Logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, DebugLevel, msg, fields)
}

func (l *Logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, InfoLevel, msg, fields)
}

func (l *Logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, WarningLevel, msg, fields)
}

func (l *Logger) Success(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, SuccessLevel, msg, fields)
}

func (l *Logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, ErrorLevel, msg, fields)
}

func (l *Logger) Critical(ctx context.Context, msg string, fields ...zap.Field) {
	l.log(ctx, CriticalLevel, msg, fields)
}

// Hash masks every literal occurrence of each hash value in msg, then logs
// at HASH.
func (l *Logger) Hash(ctx context.Context, msg string, hash []string, fields ...zap.Field) {
	l.log(ctx, HashLevel, maskLiterals(msg, hash), fields)
}

// Log logs at an arbitrary rank.
func (l *Logger) Log(ctx context.Context, lvl zapcore.Level, msg string, fields ...zap.Field) {
	l.log(ctx, lvl, msg, fields)
}

// With returns a child logger that adds fields to every record. The child
// shares the parent's filters, sinks and threshold.
func (l *Logger) With(fields ...zap.Field) *Logger {
	child := *l
	child.core = l.core.With(fields)
	return &child
}

// Name returns the registry name of the logger.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the effective threshold.
func (l *Logger) Level() zapcore.Level {
	return l.level
}

// Enabled returns true if the given level passes the logger threshold.
func (l *Logger) Enabled(level zapcore.Level) bool {
	return l.level.Enabled(level)
}

// Sync flushes any buffered log entries. Errors from syncing a terminal
// are dropped; errors from the other sinks in the same call are kept.
func (l *Logger) Sync() error {
	var errs error
	for _, err := range multierr.Errors(l.core.Sync()) {
		if !isStdoutSyncError(err) {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Close syncs and closes the logger's file sinks.
func (l *Logger) Close() error {
	return multierr.Append(l.Sync(), l.files.close())
}

// Underlying returns a zap.Logger writing straight to this logger's sinks.
// It skips the logger threshold and logger-level filters; sink filters
// still apply.
func (l *Logger) Underlying() *zap.Logger {
	return zap.New(l.core, zap.AddStacktrace(noStacktrace)).Named(l.name)
}

// isStdoutSyncError checks if error is harmless stdout/stderr sync error.
// On Linux, syncing stdout/stderr returns EINVAL or ENOTTY which are safe to ignore.
func isStdoutSyncError(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EINVAL || errno == syscall.ENOTTY
	}
	return false
}
