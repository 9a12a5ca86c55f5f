package output

import (
	"slices"
	"strconv"

	"github.com/dl/linefilter/internal/matcher"
)

// TextFormatter formats results as human-readable text with optional color.
type TextFormatter struct {
	styles       Styles
	lineNumbers  bool
	showFilename bool
	onlyMatching bool
}

// NewTextFormatter creates a TextFormatter.
func NewTextFormatter(styles Styles, lineNumbers, showFilename, onlyMatching bool) *TextFormatter {
	return &TextFormatter{
		styles:       styles,
		lineNumbers:  lineNumbers,
		showFilename: showFilename,
		onlyMatching: onlyMatching,
	}
}

func (f *TextFormatter) FormatLine(buf []byte, rec Record) []byte {
	if f.onlyMatching {
		return f.formatParts(buf, rec)
	}
	buf = f.prefix(buf, rec)
	if f.styles.Enabled() && len(rec.Spans) > 0 {
		buf = f.highlight(buf, rec.Text, rec.Spans)
	} else {
		buf = append(buf, rec.Text...)
	}
	return append(buf, '\n')
}

func (f *TextFormatter) FormatCount(buf []byte, file string, count int) []byte {
	if f.showFilename {
		buf = f.filename(buf, file)
	}
	buf = strconv.AppendInt(buf, int64(count), 10)
	return append(buf, '\n')
}

func (f *TextFormatter) FormatFileName(buf []byte, file string) []byte {
	buf = f.styles.render(buf, f.styles.Filename, []byte(file))
	return append(buf, '\n')
}

func (f *TextFormatter) prefix(buf []byte, rec Record) []byte {
	if f.showFilename {
		buf = f.filename(buf, rec.File)
	}
	if f.lineNumbers {
		buf = f.styles.render(buf, f.styles.LineNum, strconv.AppendInt(nil, int64(rec.LineNum), 10))
		buf = f.styles.render(buf, f.styles.Separator, []byte{':'})
	}
	return buf
}

func (f *TextFormatter) filename(buf []byte, file string) []byte {
	buf = f.styles.render(buf, f.styles.Filename, []byte(file))
	return f.styles.render(buf, f.styles.Separator, []byte{':'})
}

// highlight renders every byte covered by at least one span in the match
// style. Spans may overlap and are unordered, so coverage is tested per byte.
func (f *TextFormatter) highlight(buf []byte, line []byte, spans []matcher.Span) []byte {
	i := 0
	for i < len(line) {
		covered := matcher.Covered(spans, i)
		j := i + 1
		for j < len(line) && matcher.Covered(spans, j) == covered {
			j++
		}
		if covered {
			buf = f.styles.render(buf, f.styles.Match, line[i:j])
		} else {
			buf = append(buf, line[i:j]...)
		}
		i = j
	}
	return buf
}

// formatParts prints each non-empty matched part on its own line, ordered
// by position.
func (f *TextFormatter) formatParts(buf []byte, rec Record) []byte {
	spans := slices.Clone(rec.Spans)
	slices.SortStableFunc(spans, func(a, b matcher.Span) int {
		return a.Start - b.Start
	})
	for _, s := range spans {
		if s.End <= s.Start || s.End > len(rec.Text) {
			continue
		}
		buf = f.prefix(buf, rec)
		buf = f.styles.render(buf, f.styles.Match, rec.Text[s.Start:s.End])
		buf = append(buf, '\n')
	}
	return buf
}

// Ensure TextFormatter implements Formatter.
var _ Formatter = (*TextFormatter)(nil)
