// Package pattern holds the ordered list of search patterns collected from
// -e flags, -f pattern files and the positional pattern argument.
package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrFileNotFound is returned by PushFile when the pattern file cannot be opened.
var ErrFileNotFound = errors.New("no such file or directory")

// Set is an ordered collection of pattern strings. Duplicates are kept and
// insertion order decides scan order in the matcher.
type Set struct {
	patterns []string
}

// NewSet returns a Set seeded with the given patterns.
func NewSet(patterns ...string) *Set {
	s := &Set{}
	for _, p := range patterns {
		s.Push(p)
	}
	return s
}

// Push appends a pattern.
func (s *Set) Push(p string) {
	s.patterns = append(s.patterns, p)
}

// PushFile appends every line of the file at path as a pattern. Line
// terminators are stripped; empty lines become empty patterns. A read error
// part way through keeps the lines read so far.
func (s *Set) PushFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, ErrFileNotFound)
	}
	defer f.Close()

	s.PushReader(f)
	return nil
}

// PushReader appends one pattern per line read from r until EOF or the first
// read error.
func (s *Set) PushReader(r io.Reader) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(line, "\n")
			s.Push(line)
		}
		if err != nil {
			return
		}
	}
}

// Len returns the number of patterns.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// At returns the i-th pattern.
func (s *Set) At(i int) string {
	return s.patterns[i]
}

// Patterns returns a copy of the patterns in insertion order.
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}
