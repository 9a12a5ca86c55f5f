// Package walker expands directory arguments into the files to search.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
)

// Options configures directory traversal behavior.
type Options struct {
	Hidden   bool // include hidden files and directories
	NoIgnore bool // skip .gitignore processing
}

// WalkError reports a directory that could not be read.
type WalkError struct {
	Path string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// Walk calls visit for every file to search under roots, in lexical order
// within each directory. Roots that are not directories (including ones that
// do not exist) are passed to visit unchanged so the caller reports them.
// Below a root, hidden entries, ignored paths and files with binary
// extensions are skipped. Unreadable directories are passed to onErr and
// the walk continues.
func Walk(roots []string, opts Options, visit func(path string), onErr func(error)) {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			visit(root)
			continue
		}
		w := &walk{opts: opts, visit: visit, onErr: onErr}
		if !opts.NoIgnore {
			w.ignores = &ignoreRules{}
		}
		w.dir(root)
	}
}

type walk struct {
	opts    Options
	visit   func(string)
	onErr   func(error)
	ignores *ignoreRules // nil with NoIgnore
}

func (w *walk) dir(path string) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if w.onErr != nil {
			w.onErr(&WalkError{Path: path, Err: err})
		}
		return
	}

	if w.ignores.enter(path) {
		defer w.ignores.leave()
	}

	for _, entry := range entries {
		name := entry.Name()
		full := filepath.Join(path, name)

		switch {
		case entry.IsDir():
			if skipDir(name, w.opts.Hidden) || w.ignores.ignored(full, true) {
				continue
			}
			w.dir(full)

		case entry.Type().IsRegular():
			if !w.opts.Hidden && isHidden(name) {
				continue
			}
			if IsBinaryExtension(name) || w.ignores.ignored(full, false) {
				continue
			}
			w.visit(full)
		}
	}
}

// skipDir reports whether a directory below a root is never descended into.
func skipDir(name string, hidden bool) bool {
	if name == ".git" {
		return true
	}
	return !hidden && isHidden(name)
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
