package matcher

import (
	"errors"
	"fmt"
)

// ErrEmptyPatternSet is returned by Compile when there are no patterns.
// Callers treat it as "nothing can match" rather than a usage error.
var ErrEmptyPatternSet = errors.New("pattern set is empty")

// Span is a half-open byte range [Start, End) within one line.
type Span struct {
	Start int
	End   int
}

// Contains reports whether byte offset i lies inside the span.
func (s Span) Contains(i int) bool {
	return s.Start <= i && i < s.End
}

// Covered reports whether byte offset i lies inside any of spans.
// Spans may overlap and arrive in any order.
func Covered(spans []Span, i int) bool {
	for _, s := range spans {
		if s.Contains(i) {
			return true
		}
	}
	return false
}

// CompileError reports a pattern that failed to parse.
type CompileError struct {
	Index   int    // position of the pattern in the set
	Pattern string // the offending pattern
	Err     error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// engine runs a single-match search for one compiled pattern.
type engine interface {
	// find returns the leftmost match in b as [start, end), or nil.
	find(b []byte) []int
	close()
}
