package matcher

import (
	"runtime"

	"go.elara.ws/pcre"
)

// pcreEngine matches using PCRE2-compatible regexes via the pure Go pcre package.
// Supports lookahead, lookbehind, backreferences and atomic groups.
type pcreEngine struct {
	re *pcre.Regexp
}

func newPCREEngine(pattern string, ignoreCase bool) (*pcreEngine, error) {
	var opts pcre.CompileOption
	if ignoreCase {
		opts |= pcre.Caseless
	}

	re, err := pcre.CompileOpts("(?m)"+pattern, opts)
	if err != nil {
		return nil, err
	}
	return &pcreEngine{re: re}, nil
}

func (e *pcreEngine) find(b []byte) []int {
	return e.re.FindIndex(b)
}

// close releases the compiled PCRE program. The finalizer set at compile
// time is cleared first: Regexp.Close is not idempotent.
func (e *pcreEngine) close() {
	if e.re != nil {
		runtime.SetFinalizer(e.re, nil)
		e.re.Close()
		e.re = nil
	}
}
