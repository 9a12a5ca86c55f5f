package output

import (
	"io"

	"github.com/dl/linefilter/internal/matcher"
)

// Options controls which lines and summaries the Reporter prints.
type Options struct {
	Invert    bool
	CountOnly bool
	FilesOnly bool
}

// Decision is the outcome of evaluating one line.
type Decision struct {
	Selected bool // has matches XOR invert
	Print    bool // selected and neither summary mode is active
}

// Evaluate decides what to do with a line that produced spanCount spans and
// updates the counters. Matched counts raw matches regardless of invert.
func Evaluate(spanCount int, opts Options, c *Counters) Decision {
	hasMatches := spanCount > 0
	c.Total++
	if hasMatches {
		c.Matched++
	}
	selected := hasMatches != opts.Invert
	return Decision{
		Selected: selected,
		Print:    selected && !opts.CountOnly && !opts.FilesOnly,
	}
}

// Reporter evaluates lines of one file at a time and writes the selected
// lines and end-of-file summaries.
type Reporter struct {
	w        io.Writer
	f        Formatter
	opts     Options
	buf      []byte
	file     string
	counters Counters
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, f Formatter, opts Options) *Reporter {
	return &Reporter{w: w, f: f, opts: opts}
}

// BeginFile resets the counters for a new file.
func (r *Reporter) BeginFile(name string) {
	r.file = name
	r.counters = Counters{}
}

// Line evaluates one line and prints it if selected.
func (r *Reporter) Line(num int, text []byte, spans []matcher.Span) (Decision, error) {
	d := Evaluate(len(spans), r.opts, &r.counters)
	if !d.Print {
		return d, nil
	}
	r.buf = r.f.FormatLine(r.buf[:0], Record{
		File:    r.file,
		LineNum: num,
		Text:    text,
		Spans:   spans,
	})
	return d, r.flush()
}

// EndFile prints the files-with-matches and count summaries for the current
// file and returns its counters.
func (r *Reporter) EndFile() (Counters, error) {
	r.buf = r.buf[:0]
	if r.opts.FilesOnly && r.counters.Matched > 0 {
		r.buf = r.f.FormatFileName(r.buf, r.file)
	}
	if r.opts.CountOnly {
		r.buf = r.f.FormatCount(r.buf, r.file, r.counters.Count(r.opts.Invert))
	}
	return r.counters, r.flush()
}

func (r *Reporter) flush() error {
	if len(r.buf) == 0 {
		return nil
	}
	_, err := r.w.Write(r.buf)
	return err
}
