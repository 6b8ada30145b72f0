package logging

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestMegabytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected int
	}{
		{1, 1},
		{mebibyte, 1},
		{mebibyte + 1, 2},
		{104857600, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.bytes), func(t *testing.T) {
			assert.Equal(t, tt.expected, megabytes(tt.bytes))
		})
	}
}

func TestOpenFileSink_WithoutRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.log")

	for _, tc := range []struct {
		name     string
		maxBytes int64
		backups  int
	}{
		{"zero max bytes", 0, 5},
		{"zero backups", 1024, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ws, closer, err := openFileSink(path, tc.maxBytes, tc.backups)
			require.NoError(t, err)
			_, isFile := closer.(*os.File)
			assert.True(t, isFile, "non-rotating sink writes the file directly")

			_, err = ws.Write([]byte("line\n"))
			require.NoError(t, err)
			require.NoError(t, closer.Close())
		})
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\nline\n", string(data), "file is appended, never truncated")
}

func TestOpenFileSink_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "app.log")

	_, _, err := openFileSink(path, 1024, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewSinks_LastResort(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Console = false

	core, closers, err := newSinks(cfg, InfoLevel, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, closers)

	assert.False(t, core.Enabled(InfoLevel))
	assert.True(t, core.Enabled(WarningLevel))
	assert.True(t, core.Enabled(SuccessLevel))
}

func TestNewSinks_FileThreshold(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Console = false
	cfg.Filename = filepath.Join(t.TempDir(), "app.log")

	core, closers, err := newSinks(cfg, ErrorLevel, nil, nil)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	defer closers[0].Close()

	assert.False(t, core.Enabled(WarningLevel))
	assert.True(t, core.Enabled(ErrorLevel))
}

func TestNewSinks_ConsoleNotATerminalIsPlain(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")

	var buf bytes.Buffer
	cfg := NewDefaultConfig()
	cfg.ConsoleWriter = &buf

	core, _, err := newSinks(cfg, InfoLevel, nil, nil)
	require.NoError(t, err)

	ent := zapcore.Entry{Time: time.Now(), LoggerName: "app", Level: ErrorLevel, Message: "disk full"}
	ce := core.Check(ent, nil)
	require.NotNil(t, ce)
	ce.Write()

	assert.Contains(t, buf.String(), "app ERROR disk full")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestFileSink_PlainFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	var console bytes.Buffer

	cfg := NewDefaultConfig()
	cfg.ConsoleWriter = &console
	cfg.Filename = path

	reg := NewRegistry(WithNoticeLogger(NewNoticeLogger(&console)))
	log, err := reg.Get("filetest", cfg)
	require.NoError(t, err)

	log.Success(context.Background(), "deployed")
	require.NoError(t, reg.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := string(data)

	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6} filetest SUCCESS deployed\n$`, line)
	assert.NotContains(t, line, "\x1b[")
}

func TestFileSink_Rotation(t *testing.T) {
	if testing.Short() {
		t.Skip("writes several MiB")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	cfg := NewDefaultConfig()
	cfg.Console = false
	cfg.Filename = path
	cfg.FileMaxBytes = 1 // rounds up to 1 MiB
	cfg.FileBackupCount = 2

	reg := NewRegistry()
	defer reg.Close()
	log, err := reg.Get("rotation", cfg)
	require.NoError(t, err)

	ctx := context.Background()
	payload := strings.Repeat("x", 4096)
	for i := 0; i < 1200; i++ {
		log.Info(ctx, fmt.Sprintf("%05d %s", i, payload))
	}

	backups := func() []string {
		matches, err := filepath.Glob(filepath.Join(dir, "app-*.log"))
		require.NoError(t, err)
		return matches
	}

	// lumberjack prunes old backups in a background goroutine.
	assert.Eventually(t, func() bool {
		n := len(backups())
		return n >= 1 && n <= 2
	}, 5*time.Second, 50*time.Millisecond)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(mebibyte))
}

func TestFilteredCore_SinkDuplicateFilter(t *testing.T) {
	var out bytes.Buffer
	base := zapcore.NewCore(NewFormatter(nil), zapcore.AddSync(&out), NotSetLevel)
	core := newFilteredCore(base, nil, NewDuplicateFilter(nil))

	ent := zapcore.Entry{Time: testTime, LoggerName: "c", Level: InfoLevel, Message: "same"}
	for i := 0; i < 3; i++ {
		if ce := core.Check(ent, nil); ce != nil {
			ce.Write()
		}
	}

	assert.Equal(t, 1, strings.Count(out.String(), "same"))
}

func TestFilteredCore_WithSharesFilters(t *testing.T) {
	var out bytes.Buffer
	base := zapcore.NewCore(NewFormatter(nil), zapcore.AddSync(&out), NotSetLevel)
	parent := newFilteredCore(base, nil, NewDuplicateFilter(nil))
	child := parent.With(nil)

	ent := zapcore.Entry{Time: testTime, LoggerName: "c", Level: InfoLevel, Message: "same"}
	require.NoError(t, parent.Write(ent, nil))
	require.NoError(t, child.Write(ent, nil))

	assert.Equal(t, 1, strings.Count(out.String(), "same"))
}
