package matcher

import (
	"regexp/syntax"
	"strings"
	"unicode"

	"github.com/coregx/ahocorasick"
)

const minPrefilterLen = 3

// literalEngine finds one fixed string using a single-pattern Aho-Corasick
// automaton. With ignoreCase the pattern is stored ASCII-lowered and the
// caller hands it an ASCII-lowered haystack.
type literalEngine struct {
	auto *ahocorasick.Automaton
}

func newLiteralEngine(pattern string, ignoreCase bool) (*literalEngine, error) {
	if pattern == "" {
		return &literalEngine{}, nil
	}
	p := []byte(pattern)
	if ignoreCase {
		p = foldASCII(nil, p)
	}
	builder := ahocorasick.NewBuilder()
	builder.AddPattern(p)
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &literalEngine{auto: auto}, nil
}

func (e *literalEngine) find(b []byte) []int {
	// The empty string matches at the start of any haystack.
	if e.auto == nil {
		return []int{0, 0}
	}
	m := e.auto.Find(b, 0)
	if m == nil {
		return nil
	}
	return []int{m.Start, m.End}
}

func (e *literalEngine) close() {}

// prefilter rejects lines that cannot match any pattern. It holds one
// required literal per pattern (ASCII-lowered) and is run against the
// ASCII-lowered line, so it never rejects a line that some pattern matches.
type prefilter struct {
	auto *ahocorasick.Automaton
}

func newPrefilter(literals []string) *prefilter {
	if len(literals) == 0 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(foldASCII(nil, []byte(lit)))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &prefilter{auto: auto}
}

// mayMatch reports whether the folded line contains any required literal.
func (p *prefilter) mayMatch(folded []byte) bool {
	return p.auto.IsMatch(folded)
}

// fixedLiterals returns the patterns as prefilter literals, or false if an
// empty pattern makes every line a candidate.
func fixedLiterals(patterns []string) ([]string, bool) {
	for _, p := range patterns {
		if p == "" {
			return nil, false
		}
	}
	return patterns, true
}

// regexLiterals extracts one required literal per pattern. If any pattern
// has no usable literal the prefilter cannot be built.
func regexLiterals(patterns []string, ignoreCase bool) ([]string, bool) {
	lits := make([]string, 0, len(patterns))
	for _, p := range patterns {
		info, ok := extractLiteral(translateERE(p), ignoreCase)
		if !ok {
			return nil, false
		}
		lits = append(lits, info.literal)
	}
	return lits, true
}

// literalInfo holds a literal substring extracted from a regex AST that is
// guaranteed to appear in any match of the regex.
type literalInfo struct {
	literal    string
	ignoreCase bool
}

// extractLiteral parses a regex pattern and extracts the longest required
// literal substring that must appear in any match. Returns the literal info
// and true if a usable literal was found (length >= minPrefilterLen).
func extractLiteral(pattern string, ignoreCase bool) (literalInfo, bool) {
	flags := syntax.Perl
	if ignoreCase {
		flags |= syntax.FoldCase
	}

	re, err := syntax.Parse(pattern, flags)
	if err != nil {
		return literalInfo{}, false
	}
	re = re.Simplify()

	candidates := extractFromNode(re)
	if len(candidates) == 0 {
		return literalInfo{}, false
	}

	// Pick the longest candidate that survives ASCII folding.
	var best candidate
	for _, c := range candidates {
		if len(c.runes) > len(best.runes) && isASCIIRunes(c.runes) && !(c.foldCase && hasNonASCIIFold(c.runes)) {
			best = c
		}
	}

	lit := string(best.runes)
	if len(lit) < minPrefilterLen {
		return literalInfo{}, false
	}

	ci := best.foldCase || ignoreCase
	if ci {
		lit = strings.ToLower(lit)
	}

	return literalInfo{literal: lit, ignoreCase: ci}, true
}

// candidate is a literal substring found in the regex AST.
type candidate struct {
	runes    []rune
	foldCase bool
}

// extractFromNode walks the AST and returns all required literal substrings.
func extractFromNode(re *syntax.Regexp) []candidate {
	switch re.Op {
	case syntax.OpLiteral:
		if len(re.Rune) == 0 {
			return nil
		}
		return []candidate{{
			runes:    re.Rune,
			foldCase: re.Flags&syntax.FoldCase != 0,
		}}

	case syntax.OpConcat:
		return extractFromConcat(re.Sub)

	case syntax.OpCapture:
		if len(re.Sub) > 0 {
			return extractFromNode(re.Sub[0])
		}
		return nil

	case syntax.OpPlus:
		// Must match at least once, so the child is required.
		if len(re.Sub) > 0 {
			return extractFromNode(re.Sub[0])
		}
		return nil

	case syntax.OpRepeat:
		if re.Min >= 1 && len(re.Sub) > 0 {
			return extractFromNode(re.Sub[0])
		}
		return nil

	default:
		// Star, quest, alternation, classes and anchors require nothing.
		return nil
	}
}

// extractFromConcat handles OpConcat by collecting candidates from children
// and merging adjacent OpLiteral nodes into longer candidates.
func extractFromConcat(subs []*syntax.Regexp) []candidate {
	var results []candidate

	var currentRunes []rune
	var currentFold bool
	flushMerged := func() {
		if len(currentRunes) > 0 {
			results = append(results, candidate{
				runes:    currentRunes,
				foldCase: currentFold,
			})
			currentRunes = nil
		}
	}

	for _, sub := range subs {
		if sub.Op == syntax.OpLiteral && len(sub.Rune) > 0 {
			fc := sub.Flags&syntax.FoldCase != 0
			if len(currentRunes) > 0 && fc != currentFold {
				flushMerged()
			}
			currentFold = fc
			currentRunes = append(currentRunes, sub.Rune...)
		} else {
			flushMerged()
			results = append(results, extractFromNode(sub)...)
		}
	}
	flushMerged()

	return results
}

// isASCIIRunes returns true if all runes are ASCII.
func isASCIIRunes(runes []rune) bool {
	for _, r := range runes {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// hasNonASCIIFold reports whether a case-folded literal contains k or s,
// which also fold to the Kelvin sign and the long s outside ASCII.
func hasNonASCIIFold(runes []rune) bool {
	for _, r := range runes {
		switch unicode.ToLower(r) {
		case 'k', 's':
			return true
		}
	}
	return false
}

// foldASCII appends src to dst with ASCII letters lowered. Byte offsets are
// preserved, so spans found in the result apply to src.
func foldASCII(dst, src []byte) []byte {
	for _, b := range src {
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		dst = append(dst, b)
	}
	return dst
}
