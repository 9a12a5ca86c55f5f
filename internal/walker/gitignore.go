package walker

import (
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreRules holds the compiled .gitignore files of the directories on the
// current walk path, outermost first. A nil *ignoreRules ignores nothing.
type ignoreRules struct {
	dirs  []string
	rules []*ignore.GitIgnore
}

// enter compiles dir/.gitignore and reports whether a rule set was added.
// Directories without a readable .gitignore add nothing, so only a true
// result needs a matching leave.
func (r *ignoreRules) enter(dir string) bool {
	if r == nil {
		return false
	}
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return false
	}
	r.dirs = append(r.dirs, dir)
	r.rules = append(r.rules, gi)
	return true
}

// leave drops the innermost rule set.
func (r *ignoreRules) leave() {
	if r == nil || len(r.rules) == 0 {
		return
	}
	r.dirs = r.dirs[:len(r.dirs)-1]
	r.rules = r.rules[:len(r.rules)-1]
}

// ignored matches path against every active rule set, innermost first, each
// relative to the directory holding its .gitignore. Directories are matched
// with a trailing slash so "name/" patterns only exclude directories.
func (r *ignoreRules) ignored(path string, isDir bool) bool {
	if r == nil {
		return false
	}
	for i := len(r.rules) - 1; i >= 0; i-- {
		rel, err := filepath.Rel(r.dirs[i], path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
			continue
		}
		if isDir {
			rel += "/"
		}
		if r.rules[i].MatchesPath(rel) {
			return true
		}
	}
	return false
}
