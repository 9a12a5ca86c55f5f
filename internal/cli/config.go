package cli

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/dl/linefilter/internal/matcher"
	"github.com/dl/linefilter/internal/output"
	"github.com/dl/linefilter/internal/walker"
)

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Set implements pflag.Value.
func (m *ColorMode) Set(s string) error {
	v, err := ParseColorMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Type implements pflag.Value.
func (m *ColorMode) Type() string {
	return "when"
}

// PatternArg is one -e pattern or -f pattern file, kept in command-line order.
type PatternArg struct {
	Value string
	File  bool
}

// Config holds all configuration for a gogrep search.
type Config struct {
	Patterns      []PatternArg
	IgnoreCase    bool
	Invert        bool
	CountOnly     bool
	FileNamesOnly bool
	LineNumbers   bool
	NoFilename    bool
	WithFilename  bool
	OnlyMatching  bool
	NoMessages    bool
	Fixed         bool
	PCRE          bool
	Recursive     bool
	Hidden        bool
	NoIgnore      bool
	JSONOutput    bool
	Color         ColorMode
	LogLevel      log.Level
	Paths         []string
}

// DefaultConfig returns the configuration used when no file, environment
// or flag says otherwise.
func DefaultConfig() Config {
	return Config{
		Color:    ColorAuto,
		LogLevel: log.WarnLevel,
	}
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Fixed && c.PCRE {
		return fmt.Errorf("cannot use -F (fixed) and -P (pcre) together")
	}
	if c.JSONOutput && c.OnlyMatching {
		return fmt.Errorf("cannot use --json and -o (only-matching) together")
	}
	return nil
}

// ShowFilename reports whether output lines carry a filename prefix.
func (c *Config) ShowFilename() bool {
	if c.WithFilename {
		return true
	}
	return (len(c.Paths) > 1 || c.Recursive) && !c.NoFilename
}

// UseColor resolves the color mode against whether stdout is a terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}

func (c *Config) matcherOptions() matcher.Options {
	return matcher.Options{
		IgnoreCase: c.IgnoreCase,
		Fixed:      c.Fixed,
		PCRE:       c.PCRE,
	}
}

func (c *Config) reportOptions() output.Options {
	return output.Options{
		Invert:    c.Invert,
		CountOnly: c.CountOnly,
		FilesOnly: c.FileNamesOnly,
	}
}

func (c *Config) walkOptions() walker.Options {
	return walker.Options{
		Hidden:   c.Hidden,
		NoIgnore: c.NoIgnore,
	}
}
