package output

import "github.com/dl/linefilter/internal/matcher"

// Counters are the per-file line tallies.
type Counters struct {
	Total   int // lines read
	Matched int // lines with at least one span, whatever the invert setting
}

// Count is the number shown in count mode: matching lines, or non-matching
// lines under invert.
func (c Counters) Count(invert bool) int {
	if invert {
		return c.Total - c.Matched
	}
	return c.Matched
}

// Record is one selected line ready for rendering.
type Record struct {
	File    string
	LineNum int // 1-based
	Text    []byte
	Spans   []matcher.Span
}

// Formatter renders records and end-of-file summaries. buf is a reusable
// buffer: implementations append to it and return the result.
type Formatter interface {
	FormatLine(buf []byte, rec Record) []byte
	FormatCount(buf []byte, file string, count int) []byte
	FormatFileName(buf []byte, file string) []byte
}
