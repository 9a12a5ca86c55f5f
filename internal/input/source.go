// Package input opens files and standard input as line sources.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// StdinName is the display name used for standard input.
const StdinName = "(standard input)"

// Source is an opened input stream. Close is idempotent.
type Source struct {
	Name   string
	r      io.Reader
	closer func() error
}

// Reader returns the underlying stream.
func (s *Source) Reader() io.Reader {
	return s.r
}

// Close releases the underlying file. Calling it on an already-closed or
// never-opened source is a no-op.
func (s *Source) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c()
}

// Open opens path for reading. "-" opens standard input.
// Directories are rejected with EISDIR.
func Open(path string) (*Source, error) {
	if path == "-" {
		return Stdin(os.Stdin), nil
	}

	fd, err := openFile(path)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		unix.Close(fd)
		return nil, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	if stat.Mode&unix.S_IFMT == unix.S_IFDIR {
		unix.Close(fd)
		return nil, &os.PathError{Op: "read", Path: path, Err: unix.EISDIR}
	}

	f := os.NewFile(uintptr(fd), path)
	return &Source{Name: path, r: f, closer: f.Close}, nil
}

// Stdin wraps r as the standard input source. Closing it does not close r.
func Stdin(r io.Reader) *Source {
	return &Source{Name: StdinName, r: r}
}

// openFile opens read-only, asking the kernel not to update atime when the
// caller owns the file.
func openFile(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOATIME|unix.O_CLOEXEC, 0)
	if err != nil && errors.Is(err, unix.EPERM) {
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	}
	return fd, err
}

// Describe renders err the way diagnostics print it, for example
// "No such file or directory".
func Describe(err error) string {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return capitalize(errno.Error())
	}
	var pe *os.PathError
	if errors.As(err, &pe) {
		return capitalize(pe.Err.Error())
	}
	return fmt.Sprint(err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
