// Package matcher compiles a pattern set and finds the match spans each
// pattern contributes to a line.
package matcher

// Matcher holds the compiled programs for one search session. It keeps
// per-line scratch buffers and is not safe for concurrent use.
type Matcher struct {
	engines   []engine
	engine    string
	fold      bool // literal engines expect an ASCII-lowered haystack
	prefilter *prefilter
	folded    []byte
}

// Engine names the engine the programs were compiled for.
func (m *Matcher) Engine() string {
	return m.engine
}

// Len returns the number of compiled programs.
func (m *Matcher) Len() int {
	return len(m.engines)
}

// FindAll returns the match spans of every pattern in line, in pattern order.
// The result is neither sorted nor merged: spans from different patterns may
// overlap.
func (m *Matcher) FindAll(line []byte) []Span {
	return m.AppendSpans(nil, line)
}

// AppendSpans appends the spans found in line to dst and returns it. Passing
// dst[:0] reuses the caller's buffer across lines.
//
// For each pattern the search restarts at the end of its previous match and
// only sees the remaining suffix. An empty match does not move the offset,
// so such a pattern repeats until the per-line cap is reached. At most
// MaxMatchesPerLine spans are produced for one line.
func (m *Matcher) AppendSpans(dst []Span, line []byte) []Span {
	base := len(dst)
	hay, ok := m.haystack(line)
	if !ok {
		return dst
	}

	for _, e := range m.engines {
		off := 0
		for len(dst)-base < MaxMatchesPerLine {
			loc := e.find(hay[off:])
			if loc == nil {
				break
			}
			dst = append(dst, Span{Start: off + loc[0], End: off + loc[1]})
			off += loc[1]
		}
		if len(dst)-base >= MaxMatchesPerLine {
			break
		}
	}
	return dst
}

// Match reports whether any pattern matches line.
func (m *Matcher) Match(line []byte) bool {
	hay, ok := m.haystack(line)
	if !ok {
		return false
	}
	for _, e := range m.engines {
		if e.find(hay) != nil {
			return true
		}
	}
	return false
}

// haystack returns the bytes the engines search for line, and false when the
// prefilter rules the line out.
func (m *Matcher) haystack(line []byte) ([]byte, bool) {
	if !m.fold && m.prefilter == nil {
		return line, true
	}
	m.folded = foldASCII(m.folded[:0], line)
	if m.prefilter != nil && !m.prefilter.mayMatch(m.folded) {
		return nil, false
	}
	if m.fold {
		return m.folded, true
	}
	return line, true
}

// Close releases the compiled programs. It is safe to call more than once.
func (m *Matcher) Close() {
	if m == nil {
		return
	}
	for _, e := range m.engines {
		e.close()
	}
	m.engines = nil
}
