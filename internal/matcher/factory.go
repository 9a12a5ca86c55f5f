package matcher

import (
	"github.com/dl/linefilter/internal/pattern"
)

// Options selects the engine and case handling used by Compile.
type Options struct {
	IgnoreCase bool
	Fixed      bool // patterns are literal strings
	PCRE       bool // patterns use PCRE2 syntax
}

// Engine returns the name of the engine the options select.
func (o Options) Engine() string {
	switch {
	case o.PCRE:
		return "pcre"
	case o.Fixed:
		return "fixed"
	default:
		return "ere"
	}
}

// Compile builds one program per pattern, in pattern order.
// Selection logic:
//   - PCRE flag -> PCRE2 via pure Go port
//   - Fixed -> one Aho-Corasick automaton per pattern, ASCII case folding
//   - Otherwise -> RE2 in leftmost-longest mode (POSIX extended semantics)
//
// Fixed and RE2 sets also get a shared literal prefilter when every pattern
// has a required literal.
func Compile(set *pattern.Set, opts Options) (*Matcher, error) {
	if set.Len() == 0 {
		return nil, ErrEmptyPatternSet
	}

	patterns := set.Patterns()
	m := &Matcher{
		engines: make([]engine, 0, len(patterns)),
		engine:  opts.Engine(),
		fold:    opts.Fixed && opts.IgnoreCase,
	}

	for i, p := range patterns {
		e, err := newEngine(p, opts)
		if err != nil {
			m.Close()
			return nil, &CompileError{Index: i, Pattern: p, Err: err}
		}
		m.engines = append(m.engines, e)
	}

	var lits []string
	var ok bool
	switch {
	case opts.PCRE:
	case opts.Fixed:
		lits, ok = fixedLiterals(patterns)
	default:
		lits, ok = regexLiterals(patterns, opts.IgnoreCase)
	}
	if ok {
		m.prefilter = newPrefilter(lits)
	}

	return m, nil
}

func newEngine(p string, opts Options) (engine, error) {
	switch {
	case opts.PCRE:
		return newPCREEngine(p, opts.IgnoreCase)
	case opts.Fixed:
		return newLiteralEngine(p, opts.IgnoreCase)
	default:
		return newRegexEngine(p, opts.IgnoreCase)
	}
}
