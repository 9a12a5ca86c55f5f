package matcher

import (
	"regexp"
	"strings"
)

// regexEngine uses Go's RE2 regexp engine with leftmost-longest matching,
// which is how POSIX extended expressions pick between alternatives.
type regexEngine struct {
	re *regexp.Regexp
}

func newRegexEngine(pattern string, ignoreCase bool) (*regexEngine, error) {
	flags := "(?m)"
	if ignoreCase {
		flags = "(?im)"
	}
	re, err := regexp.Compile(flags + translateERE(pattern))
	if err != nil {
		return nil, err
	}
	re.Longest()
	return &regexEngine{re: re}, nil
}

func (e *regexEngine) find(b []byte) []int {
	return e.re.FindIndex(b)
}

func (e *regexEngine) close() {}

// translateERE rewrites the GNU word-boundary escapes \< and \> into \b,
// which RE2 understands. Everything else is passed through.
func translateERE(pattern string) string {
	if !strings.Contains(pattern, `\<`) && !strings.Contains(pattern, `\>`) {
		return pattern
	}

	var sb strings.Builder
	sb.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' && i+1 < len(pattern) {
			next := pattern[i+1]
			if next == '<' || next == '>' {
				sb.WriteString(`\b`)
			} else {
				sb.WriteByte(c)
				sb.WriteByte(next)
			}
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
