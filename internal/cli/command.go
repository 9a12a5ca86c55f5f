package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const grepUsage = "Usage: gogrep [OPTION]... PATTERNS [FILE]...\nTry 'gogrep --help' for more information.\n"

// usageError marks errors that print the short usage text.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// patternValue appends -e and -f arguments to one shared list so their
// relative order survives parsing.
type patternValue struct {
	list *[]PatternArg
	file bool
}

func (v *patternValue) String() string { return "" }
func (v *patternValue) Type() string {
	if v.file {
		return "file"
	}
	return "pattern"
}

func (v *patternValue) Set(s string) error {
	*v.list = append(*v.list, PatternArg{Value: s, File: v.file})
	return nil
}

// NewGrepCommand builds the gogrep root command. The exit status of the last
// execution is stored in *code.
func NewGrepCommand(s Streams, defaults Config, code *int) *cobra.Command {
	cfg := defaults
	var debug bool

	c := &cobra.Command{
		Use:   "gogrep [OPTION]... PATTERNS [FILE]...",
		Short: "Print lines that match patterns",
		Long: `Search for PATTERNS in each FILE and print matching lines.

  gogrep -n 'error' app.log        # number matching lines
  gogrep -e foo -e bar a.txt b.txt # several patterns, several files
  gogrep -f words.txt -c notes.txt # patterns from a file, count only
  gogrep -r -i 'todo' .            # recursive, case-insensitive

With no FILE, read standard input. Exit status is 0 if any line matched,
1 if none did and 2 if an error occurred.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(c *cobra.Command, args []string) error {
			if len(cfg.Patterns) == 0 {
				if len(args) == 0 {
					return &usageError{errors.New("no pattern given")}
				}
				cfg.Patterns = []PatternArg{{Value: args[0]}}
				args = args[1:]
			}
			cfg.Paths = args
			if debug {
				cfg.LogLevel = log.DebugLevel
			}
			if err := cfg.Validate(); err != nil {
				return &usageError{err}
			}
			*code = Run(cfg, s)
			return nil
		},
	}
	c.SetIn(s.In)
	c.SetOut(s.Out)
	c.SetErr(s.Err)
	c.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	f := c.Flags()
	f.SortFlags = false
	f.VarP(&patternValue{list: &cfg.Patterns}, "regexp", "e", "use PATTERN for matching")
	f.VarP(&patternValue{list: &cfg.Patterns, file: true}, "file", "f", "take PATTERNS from FILE")
	f.BoolVarP(&cfg.IgnoreCase, "ignore-case", "i", cfg.IgnoreCase, "ignore case distinctions in patterns and data")
	f.BoolVarP(&cfg.Invert, "invert-match", "v", false, "select non-matching lines")
	f.BoolVarP(&cfg.CountOnly, "count", "c", false, "print only a count of selected lines per FILE")
	f.BoolVarP(&cfg.FileNamesOnly, "files-with-matches", "l", false, "print only names of FILEs with selected lines")
	f.BoolVarP(&cfg.LineNumbers, "line-number", "n", cfg.LineNumbers, "print line number with output lines")
	f.BoolVarP(&cfg.NoFilename, "no-filename", "h", false, "suppress the file name prefix on output")
	f.BoolVarP(&cfg.WithFilename, "with-filename", "H", false, "print file name with output lines")
	f.BoolVarP(&cfg.OnlyMatching, "only-matching", "o", false, "show only nonempty parts of lines that match")
	f.BoolVarP(&cfg.NoMessages, "no-messages", "s", false, "suppress error messages")
	f.BoolVarP(&cfg.Fixed, "fixed-strings", "F", false, "PATTERNS are strings")
	f.BoolVarP(&cfg.PCRE, "perl-regexp", "P", false, "PATTERNS are Perl regular expressions")
	f.BoolVarP(&cfg.Recursive, "recursive", "r", false, "search directories recursively")
	f.BoolVar(&cfg.Hidden, "hidden", cfg.Hidden, "search hidden files and directories")
	f.BoolVar(&cfg.NoIgnore, "no-ignore", cfg.NoIgnore, "do not respect .gitignore files")
	f.Var(&cfg.Color, "color", "use markers to highlight matches: auto, always or never")
	f.BoolVar(&cfg.JSONOutput, "json", false, "print results as JSON lines")
	f.BoolVar(&debug, "debug", false, "log debug information to stderr")
	// Declared without a shorthand so -h stays --no-filename.
	f.Bool("help", false, "display this help text and exit")
	f.Lookup("color").NoOptDefVal = "auto"

	return c
}

// GrepMain runs gogrep with args and returns the process exit status.
func GrepMain(args []string, s Streams) int {
	defaults, err := LoadDefaults()
	if err != nil {
		fmt.Fprintf(s.Err, "gogrep: %v\n", err)
		return ExitError
	}

	if args == nil {
		args = []string{}
	}
	code := ExitMatch
	c := NewGrepCommand(s, defaults, &code)
	c.SetArgs(args)
	if err := c.Execute(); err != nil {
		fmt.Fprintf(s.Err, "gogrep: %v\n", err)
		var ue *usageError
		if errors.As(err, &ue) {
			fmt.Fprint(s.Err, grepUsage)
		}
		flush(s)
		return ExitError
	}
	flush(s)
	return code
}

// flush drains buffered stdout; Run flushes after a search, this covers
// help output.
func flush(s Streams) {
	if f, ok := s.Out.(flusher); ok {
		f.Flush()
	}
}

var _ pflag.Value = (*patternValue)(nil)
var _ pflag.Value = (*ColorMode)(nil)
