package input

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const readBufferSize = 64 * 1024

// Line is one line of input. Text excludes the line terminator and is only
// valid until the next call to Next.
type Line struct {
	Text []byte
	Num  int // 1-based
	// Terminated is false only for a final line without a trailing newline.
	Terminated bool
}

// LineReader yields the lines of a stream one at a time. Lines of any length
// are supported; the scratch buffer grows to the longest line seen and is
// reused afterwards.
type LineReader struct {
	br      *bufio.Reader
	scratch []byte
	num     int
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReaderSize(r, readBufferSize)}
}

// Next returns the next line. It returns io.EOF after the last line, or the
// underlying read error.
func (r *LineReader) Next() (Line, error) {
	data, err := r.br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		r.scratch = append(r.scratch[:0], data...)
		for errors.Is(err, bufio.ErrBufferFull) {
			data, err = r.br.ReadSlice('\n')
			r.scratch = append(r.scratch, data...)
		}
		data = r.scratch
	}

	if len(data) == 0 {
		if err == nil {
			err = io.EOF
		}
		return Line{}, err
	}
	if err != nil && err != io.EOF {
		return Line{}, err
	}

	r.num++
	line := Line{Text: data, Num: r.num}
	if data[len(data)-1] == '\n' {
		line.Text = data[:len(data)-1]
		line.Terminated = true
	}
	return line, nil
}

// Peek returns up to n bytes without consuming them. Used for binary sniffing.
func (r *LineReader) Peek(n int) []byte {
	b, _ := r.br.Peek(n)
	return b
}

// binarySniffLen matches the window GNU grep inspects.
const binarySniffLen = 8192

// IsBinary reports whether data looks binary: a NUL byte within the first 8KB.
func IsBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// SniffBinary peeks at the start of the stream and reports whether it is binary.
func (r *LineReader) SniffBinary() bool {
	return IsBinary(r.Peek(binarySniffLen))
}
