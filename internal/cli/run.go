package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/dl/linefilter/internal/input"
	"github.com/dl/linefilter/internal/matcher"
	"github.com/dl/linefilter/internal/output"
	"github.com/dl/linefilter/internal/pattern"
	"github.com/dl/linefilter/internal/walker"
)

// Exit codes.
const (
	ExitMatch   = 0 // at least one line matched
	ExitNoMatch = 1 // nothing matched
	ExitError   = 2 // usage error, bad pattern or I/O failure
)

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// Terminal reports whether Out is an interactive terminal.
	Terminal bool
}

// StdStreams returns the process streams with stdout behind a buffered writer.
func StdStreams() Streams {
	return Streams{
		In:       os.Stdin,
		Out:      output.NewWriter(),
		Err:      os.Stderr,
		Terminal: output.StdoutIsTerminal(),
	}
}

type flusher interface {
	Flush() error
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "gogrep",
	})
}

// Run executes the search with the given config.
// Returns exit code: 0 = match found, 1 = no match, 2 = error.
func Run(cfg Config, s Streams) int {
	logger := newLogger(s.Err, cfg.LogLevel)

	set, err := buildPatternSet(cfg.Patterns)
	if err != nil {
		fmt.Fprintf(s.Err, "error: %v\n", err)
		return ExitError
	}

	m, err := matcher.Compile(set, cfg.matcherOptions())
	switch {
	case errors.Is(err, matcher.ErrEmptyPatternSet):
		logger.Debug("empty pattern set, nothing can match")
	case err != nil:
		fmt.Fprintf(s.Err, "error: %v\n", err)
		return ExitError
	default:
		defer m.Close()
		logger.Debug("compiled patterns", "count", m.Len(), "engine", m.Engine())
	}

	d := &driver{
		cfg:    cfg,
		m:      m,
		log:    logger,
		stdin:  s.In,
		errOut: s.Err,
		rep:    output.NewReporter(s.Out, newFormatter(cfg, s.Terminal), cfg.reportOptions()),
	}
	d.run()

	if f, ok := s.Out.(flusher); ok {
		if err := f.Flush(); err != nil {
			logger.Error("write failed", "err", err)
			d.failed = true
		}
	}

	switch {
	case d.failed:
		return ExitError
	case d.matched > 0:
		return ExitMatch
	default:
		return ExitNoMatch
	}
}

// buildPatternSet pushes -e patterns and -f pattern files in command-line order.
func buildPatternSet(args []PatternArg) (*pattern.Set, error) {
	set := pattern.NewSet()
	for _, a := range args {
		if !a.File {
			set.Push(a.Value)
			continue
		}
		if err := set.PushFile(a.Value); err != nil {
			if errors.Is(err, pattern.ErrFileNotFound) {
				return nil, fmt.Errorf("%s: No such file or directory", a.Value)
			}
			return nil, err
		}
	}
	return set, nil
}

func newFormatter(cfg Config, terminal bool) output.Formatter {
	if cfg.JSONOutput {
		return output.NewJSONFormatter()
	}
	styles := output.NoStyles()
	if cfg.UseColor(terminal) {
		styles = output.NewStyles()
	}
	return output.NewTextFormatter(styles, cfg.LineNumbers, cfg.ShowFilename(), cfg.OnlyMatching)
}

// driver walks the inputs of one invocation and aggregates the exit status.
type driver struct {
	cfg    Config
	m      *matcher.Matcher // nil when the pattern set is empty
	rep    *output.Reporter
	log    *log.Logger
	stdin  io.Reader
	errOut io.Writer

	spans   []matcher.Span
	matched int  // lines with a match, across all files
	failed  bool // an input could not be read
	stopped bool // output is broken, stop searching
}

func (d *driver) run() {
	paths := d.cfg.Paths
	if len(paths) == 0 {
		if !d.cfg.Recursive {
			d.search(input.Stdin(d.stdin))
			return
		}
		paths = []string{"."}
	}

	if !d.cfg.Recursive {
		for _, path := range paths {
			if d.stopped {
				return
			}
			d.searchPath(path)
		}
		return
	}

	walker.Walk(paths, d.cfg.walkOptions(), func(path string) {
		if !d.stopped {
			d.searchPath(path)
		}
	}, func(err error) {
		d.failed = true
		if !d.cfg.NoMessages {
			d.log.Warn("walk error", "err", err)
		}
	})
}

// searchPath opens one path and searches it. The source is released on
// every return path.
func (d *driver) searchPath(path string) {
	var src *input.Source
	if path == "-" {
		src = input.Stdin(d.stdin)
	} else {
		var err error
		src, err = input.Open(path)
		if err != nil {
			d.fail(path, err)
			return
		}
	}
	defer src.Close()

	d.search(src)
}

func (d *driver) search(src *input.Source) {
	if d.m == nil {
		return
	}

	lr := input.NewLineReader(src.Reader())
	if d.cfg.Recursive && lr.SniffBinary() {
		d.log.Debug("skipping binary file", "file", src.Name)
		return
	}

	d.rep.BeginFile(src.Name)
	for {
		line, err := lr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.fail(src.Name, err)
			break
		}
		d.spans = d.m.AppendSpans(d.spans[:0], line.Text)
		if _, err := d.rep.Line(line.Num, line.Text, d.spans); err != nil {
			d.writeFailed(err)
			return
		}
	}

	c, err := d.rep.EndFile()
	if err != nil {
		d.writeFailed(err)
		return
	}
	d.matched += c.Matched
	d.log.Debug("searched", "file", src.Name, "lines", c.Total, "matched", c.Matched)
}

// fail reports an unreadable input and records the failure.
func (d *driver) fail(path string, err error) {
	d.failed = true
	if !d.cfg.NoMessages {
		fmt.Fprintf(d.errOut, "error: %s: %s\n", path, input.Describe(err))
	}
}

func (d *driver) writeFailed(err error) {
	d.failed = true
	d.stopped = true
	d.log.Error("write failed", "err", err)
}
