// internal/logging/sink.go
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const mebibyte = 1 << 20

// noStacktrace keeps zap from capturing stacks: every simplelog rank is
// above zap's FatalLevel, which is where zap starts capturing by default.
var noStacktrace = zap.LevelEnablerFunc(func(zapcore.Level) bool { return false })

// megabytes rounds a byte bound up to lumberjack's whole-MiB granularity.
func megabytes(n int64) int {
	return int((n + mebibyte - 1) / mebibyte)
}

// newLastResortCore writes bare messages at WARNING and above.
func newLastResortCore(w io.Writer) zapcore.Core {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	return zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), WarningLevel)
}

// NewNoticeLogger returns the default channel for duplicate-filter notices:
// bare messages on w at WARNING and above.
func NewNoticeLogger(w io.Writer) *zap.Logger {
	return zap.New(newLastResortCore(w), zap.AddStacktrace(noStacktrace))
}

// openFileSink opens filename for append up front so path errors surface
// at configuration time. Rotation is enabled only when both bounds are
// positive; otherwise the file grows without rotating.
func openFileSink(filename string, maxBytes int64, backups int) (zapcore.WriteSyncer, io.Closer, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if maxBytes <= 0 || backups <= 0 {
		return zapcore.Lock(f), f, nil
	}
	if err := f.Close(); err != nil {
		return nil, nil, fmt.Errorf("failed to close log file: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    megabytes(maxBytes),
		MaxBackups: backups,
		LocalTime:  true,
	}
	return zapcore.AddSync(lj), lj, nil
}

// newSinks builds the console and file sinks described by cfg. With no
// sink configured it falls back to the last-resort stderr core.
func newSinks(cfg *Config, level zapcore.Level, notices *zap.Logger, m *Metrics) (zapcore.Core, []io.Closer, error) {
	cores := make([]zapcore.Core, 0, 2)
	var closers []io.Closer

	if cfg.Console {
		w := cfg.ConsoleWriter
		if w == nil {
			w = os.Stderr
		}
		var styles map[zapcore.Level]lipgloss.Style
		if !cfg.NoColor {
			var err error
			styles, err = buildStyles(lipgloss.NewRenderer(w), cfg.colors())
			if err != nil {
				return nil, nil, err
			}
		}
		console := zapcore.NewCore(NewFormatter(styles), zapcore.Lock(zapcore.AddSync(w)), NotSetLevel)
		cores = append(cores, newFilteredCore(console, m, NewDuplicateFilter(notices)))
	}

	if cfg.Filename != "" {
		ws, closer, err := openFileSink(cfg.Filename, cfg.FileMaxBytes, cfg.FileBackupCount)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, closer)
		file := zapcore.NewCore(NewFormatter(nil), ws, level)
		cores = append(cores, newFilteredCore(file, m))
	}

	switch len(cores) {
	case 0:
		return newLastResortCore(os.Stderr), closers, nil
	case 1:
		return cores[0], closers, nil
	default:
		return zapcore.NewTee(cores...), closers, nil
	}
}
