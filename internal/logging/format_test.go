package logging

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var testTime = time.Date(2024, 1, 2, 3, 4, 5, 6000, time.Local)

func ansiRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return r
}

func TestFormatter_PlainLayout(t *testing.T) {
	f := NewFormatter(nil)
	ent := zapcore.Entry{Time: testTime, LoggerName: "app", Level: InfoLevel, Message: "hello world"}

	buf, err := f.EncodeEntry(ent, nil)
	require.NoError(t, err)
	defer buf.Free()

	assert.Equal(t, "2024-01-02T03:04:05.000006 app INFO hello world\n", buf.String())
}

func TestFormatter_CustomLevelNames(t *testing.T) {
	f := NewFormatter(nil)

	tests := []struct {
		level    zapcore.Level
		expected string
	}{
		{SuccessLevel, "2024-01-02T03:04:05.000006 app SUCCESS m\n"},
		{HashLevel, "2024-01-02T03:04:05.000006 app HASH m\n"},
		{zapcore.Level(25), "2024-01-02T03:04:05.000006 app Level 25 m\n"},
	}

	for _, tt := range tests {
		t.Run(LevelName(tt.level), func(t *testing.T) {
			buf, err := f.EncodeEntry(zapcore.Entry{Time: testTime, LoggerName: "app", Level: tt.level, Message: "m"}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestFormatter_AppendsFields(t *testing.T) {
	f := NewFormatter(nil)
	f.AddString("component", "db")
	ent := zapcore.Entry{Time: testTime, LoggerName: "app", Level: WarningLevel, Message: "slow"}

	buf, err := f.EncodeEntry(ent, []zapcore.Field{zap.Int("ms", 250)})
	require.NoError(t, err)

	assert.Equal(t, `2024-01-02T03:04:05.000006 app WARNING slow {"component":"db","ms":250}`+"\n", buf.String())
}

func TestFormatter_CloneIsIndependent(t *testing.T) {
	f := NewFormatter(nil)
	clone := f.Clone()
	clone.AddString("k", "v")

	buf, err := f.EncodeEntry(zapcore.Entry{Time: testTime, LoggerName: "a", Level: InfoLevel, Message: "m"}, nil)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), `"k"`)
}

func TestFormatter_ColorsLevelOnly(t *testing.T) {
	styles, err := buildStyles(ansiRenderer(), DefaultColors())
	require.NoError(t, err)
	f := NewFormatter(styles)

	buf, err := f.EncodeEntry(zapcore.Entry{Time: testTime, LoggerName: "app", Level: ErrorLevel, Message: "boom"}, nil)
	require.NoError(t, err)
	line := buf.String()

	assert.Contains(t, line, "\x1b[")
	assert.Contains(t, line, "ERROR")
	assert.Contains(t, line, "2024-01-02T03:04:05.000006 app ")
	assert.Contains(t, line, " boom\n")
}

func TestBuildStyles_Defaults(t *testing.T) {
	styles, err := buildStyles(ansiRenderer(), DefaultColors())
	require.NoError(t, err)

	for _, lvl := range []zapcore.Level{DebugLevel, InfoLevel, WarningLevel, SuccessLevel, HashLevel, ErrorLevel, CriticalLevel} {
		assert.Contains(t, styles, lvl, LevelName(lvl))
	}
	assert.True(t, styles[SuccessLevel].GetBold())
	assert.True(t, styles[HashLevel].GetBold())
	assert.Equal(t, lipgloss.Color("7"), styles[CriticalLevel].GetBackground())
	assert.Equal(t, lipgloss.Color("1"), styles[CriticalLevel].GetForeground())
}

func TestParseColorSpec(t *testing.T) {
	r := ansiRenderer()

	tests := []struct {
		spec    string
		wantErr bool
	}{
		{"cyan", false},
		{"bold_green", false},
		{"red,bg_white", false},
		{"light_blue", false},
		{"bg_light_black", false},
		{"thin_purple,underline", false},
		{"bold", false},
		{"", false},
		{"chartreuse", true},
		{"bg_nope", true},
		{"bold_", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := parseColorSpec(r, tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseColorSpec_LightColors(t *testing.T) {
	style, err := parseColorSpec(ansiRenderer(), "light_red,bg_light_green")
	require.NoError(t, err)

	assert.Equal(t, lipgloss.Color("9"), style.GetForeground())
	assert.Equal(t, lipgloss.Color("10"), style.GetBackground())
}

func TestBuildStyles_UnknownLevelKey(t *testing.T) {
	_, err := buildStyles(ansiRenderer(), map[string]string{"VERBOSE": "red"})
	assert.ErrorIs(t, err, ErrInvalidColor)
}
