// internal/logging/format.go
package logging

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is ISO-8601 local time with microseconds and no zone.
const TimeLayout = "2006-01-02T15:04:05.000000"

var linePool = buffer.NewPool()

// DefaultColors returns the colorlog-style color spec for each level name.
func DefaultColors() map[string]string {
	return map[string]string{
		"DEBUG":    "cyan",
		"INFO":     "green",
		"WARNING":  "yellow",
		"SUCCESS":  "bold_green",
		"ERROR":    "red",
		"CRITICAL": "red,bg_white",
		"HASH":     "bold_yellow",
	}
}

var ansiColors = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"purple":  5,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// ansiColor resolves "red" or "light_red" to an ANSI palette index.
func ansiColor(name string) (lipgloss.Color, bool) {
	offset := 0
	if rest, ok := strings.CutPrefix(name, "light_"); ok {
		name, offset = rest, 8
	}
	n, ok := ansiColors[name]
	if !ok {
		return "", false
	}
	return lipgloss.Color(strconv.Itoa(n + offset)), true
}

// parseColorSpec turns a comma separated colorlog spec such as
// "bold_green" or "red,bg_white" into a style.
func parseColorSpec(r *lipgloss.Renderer, spec string) (lipgloss.Style, error) {
	style := r.NewStyle()
	for _, part := range strings.Split(spec, ",") {
		tok := strings.ToLower(strings.TrimSpace(part))
		// Attribute prefixes may be stacked: "bold_green", "bold_thin_red".
		for {
			if rest, ok := strings.CutPrefix(tok, "bold"); ok {
				style = style.Bold(true)
				tok = strings.TrimPrefix(rest, "_")
				continue
			}
			if rest, ok := strings.CutPrefix(tok, "thin"); ok {
				style = style.Faint(true)
				tok = strings.TrimPrefix(rest, "_")
				continue
			}
			break
		}

		switch {
		case tok == "":
		case tok == "italic":
			style = style.Italic(true)
		case tok == "underline":
			style = style.Underline(true)
		case strings.HasPrefix(tok, "bg_"):
			c, ok := ansiColor(strings.TrimPrefix(tok, "bg_"))
			if !ok {
				return style, fmt.Errorf("%w: unknown background %q in %q", ErrInvalidColor, tok, spec)
			}
			style = style.Background(c)
		default:
			c, ok := ansiColor(tok)
			if !ok {
				return style, fmt.Errorf("%w: unknown token %q in %q", ErrInvalidColor, tok, spec)
			}
			style = style.Foreground(c)
		}
	}
	return style, nil
}

// buildStyles maps level names (or ranks) to styles rendered by r.
func buildStyles(r *lipgloss.Renderer, colors map[string]string) (map[zapcore.Level]lipgloss.Style, error) {
	styles := make(map[zapcore.Level]lipgloss.Style, len(colors))
	for name, spec := range colors {
		lvl, err := ParseLevel(name)
		if err != nil {
			return nil, fmt.Errorf("%w: color key: %v", ErrInvalidColor, err)
		}
		style, err := parseColorSpec(r, spec)
		if err != nil {
			return nil, err
		}
		styles[lvl] = style
	}
	return styles, nil
}

// Formatter renders "{time} {logger} {level} {message}", appending any
// structured fields as a JSON object. Levels are colored when a style is
// configured for them.
type Formatter struct {
	zapcore.Encoder
	styles map[zapcore.Level]lipgloss.Style
}

// NewFormatter returns a formatter. A nil styles map disables color.
func NewFormatter(styles map[zapcore.Level]lipgloss.Style) *Formatter {
	fieldsCfg := zapcore.EncoderConfig{
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return &Formatter{
		Encoder: zapcore.NewJSONEncoder(fieldsCfg),
		styles:  styles,
	}
}

func (f *Formatter) levelText(l zapcore.Level) string {
	name := LevelName(l)
	if style, ok := f.styles[l]; ok {
		return style.Render(name)
	}
	return name
}

// Clone creates a copy of the formatter.
func (f *Formatter) Clone() zapcore.Encoder {
	return &Formatter{
		Encoder: f.Encoder.Clone(),
		styles:  f.styles,
	}
}

// EncodeEntry implements zapcore.Encoder.
func (f *Formatter) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	ctx, err := f.Encoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		return nil, err
	}
	defer ctx.Free()

	line := linePool.Get()
	line.AppendString(ent.Time.Format(TimeLayout))
	line.AppendByte(' ')
	line.AppendString(ent.LoggerName)
	line.AppendByte(' ')
	line.AppendString(f.levelText(ent.Level))
	line.AppendByte(' ')
	line.AppendString(ent.Message)
	if obj := bytes.TrimSpace(ctx.Bytes()); len(obj) > 2 {
		line.AppendByte(' ')
		_, _ = line.Write(obj)
	}
	if ent.Stack != "" {
		line.AppendByte('\n')
		line.AppendString(ent.Stack)
	}
	line.AppendByte('\n')
	return line, nil
}
