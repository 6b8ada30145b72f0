// internal/logging/config.go
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Config holds the options for one named logger.
type Config struct {
	// Level is a level name ("INFO", "success") or an integer rank ("25").
	Level           string `koanf:"level"`
	Filename        string `koanf:"filename"`
	Console         bool   `koanf:"console"`
	FileMaxBytes    int64  `koanf:"file_max_bytes"`
	FileBackupCount int    `koanf:"file_backup_count"`

	MaskSensitive         bool     `koanf:"mask_sensitive"`
	MaskSensitivePatterns []string `koanf:"mask_sensitive_patterns"`
	MaskCaseInsensitive   bool     `koanf:"mask_case_insensitive"`

	// Colors maps level names to colorlog-style specs ("bold_green",
	// "red,bg_white"). Entries override DefaultColors per level.
	Colors  map[string]string `koanf:"colors"`
	NoColor bool              `koanf:"no_color"`

	// ConsoleWriter overrides stderr for the console sink.
	ConsoleWriter io.Writer `koanf:"-"`
}

// NewDefaultConfig returns the defaults: INFO to a colored stderr console,
// 100 MiB file rotation keeping 20 backups when a filename is set.
func NewDefaultConfig() *Config {
	return &Config{
		Level:           "INFO",
		Console:         true,
		FileMaxBytes:    104857600,
		FileBackupCount: 20,
	}
}

// colors overlays Colors on DefaultColors. Keys naming the same level
// ("error", "ERROR", "40") replace the default entry for that level.
// Unparseable keys are kept so Validate can report them.
func (c *Config) colors() map[string]string {
	merged := DefaultColors()
	for name, spec := range c.Colors {
		if lvl, err := ParseLevel(name); err == nil {
			for def := range merged {
				if l, _ := ParseLevel(def); l == lvl {
					delete(merged, def)
				}
			}
		}
		merged[name] = spec
	}
	return merged
}

func (c *Config) sensitivePatterns() []string {
	if len(c.MaskSensitivePatterns) == 0 {
		return DefaultSensitivePatterns()
	}
	return c.MaskSensitivePatterns
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.FileMaxBytes < 0 {
		return fmt.Errorf("%w: file_max_bytes must be >= 0, got %d", ErrInvalidConfig, c.FileMaxBytes)
	}
	if c.FileBackupCount < 0 {
		return fmt.Errorf("%w: file_backup_count must be >= 0, got %d", ErrInvalidConfig, c.FileBackupCount)
	}

	if c.MaskSensitive {
		if _, err := NewRedactingFilter(c.sensitivePatterns(), c.MaskCaseInsensitive); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if c.Console && !c.NoColor {
		if _, err := buildStyles(lipgloss.DefaultRenderer(), c.colors()); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	return nil
}
