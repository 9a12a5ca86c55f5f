package output

import (
	"os"

	"golang.org/x/sys/unix"
)

const writerFlushSize = 64 * 1024

// Writer batches output and writes it to a file descriptor with writev.
type Writer struct {
	fd  int
	buf []byte
}

// NewWriter creates a Writer that writes to stdout.
func NewWriter() *Writer {
	return NewFdWriter(int(os.Stdout.Fd()))
}

// NewFdWriter creates a Writer for an arbitrary file descriptor.
func NewFdWriter(fd int) *Writer {
	return &Writer{fd: fd, buf: make([]byte, 0, writerFlushSize)}
}

// Write buffers p, flushing once the buffer reaches the flush size.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	if len(w.buf) >= writerFlushSize {
		if err := w.Flush(); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// Flush writes all buffered bytes using writev for scatter-gather I/O.
func (w *Writer) Flush() error {
	data := w.buf
	for len(data) > 0 {
		n, err := unix.Writev(w.fd, [][]byte{data})
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			w.buf = w.buf[:0]
			return err
		}
		data = data[n:]
	}
	w.buf = w.buf[:0]
	return nil
}
