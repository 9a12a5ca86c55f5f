// Package cat copies input streams to an output, optionally numbering lines,
// squeezing blank runs and making nonprinting bytes visible.
package cat

import (
	"io"
	"strconv"

	"github.com/dl/linefilter/internal/input"
)

// Options selects the transforms applied while copying.
type Options struct {
	NumberNonBlank  bool // -b, overrides Number
	Number          bool // -n
	SqueezeBlank    bool // -s
	ShowNonprinting bool // -v: ^ and M- notation, except for newline and tab
	ShowTabs        bool // -T
	ShowEnds        bool // -E
}

func (o Options) plain() bool {
	return o == Options{}
}

// Cat writes transformed input to w. Line numbers and blank-line squeezing
// carry over from one Copy to the next, so several files number as one
// stream.
type Cat struct {
	w    io.Writer
	opts Options
	buf  []byte

	lineNum   int
	midLine   bool // the previous input ended without a newline
	prevBlank bool
}

// New returns a Cat writing to w.
func New(w io.Writer, opts Options) *Cat {
	return &Cat{w: w, opts: opts}
}

// Copy transforms everything read from r. It returns the first read or
// write error.
func (c *Cat) Copy(r io.Reader) error {
	if c.opts.plain() {
		_, err := io.Copy(c.w, r)
		return err
	}

	lr := input.NewLineReader(r)
	for {
		line, err := lr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := c.line(line.Text, line.Terminated); err != nil {
			return err
		}
	}
}

func (c *Cat) line(text []byte, terminated bool) error {
	atStart := !c.midLine
	blank := atStart && terminated && len(text) == 0

	if blank && c.prevBlank && c.opts.SqueezeBlank {
		return nil
	}

	buf := c.buf[:0]
	if atStart && c.numbered(blank) {
		c.lineNum++
		buf = appendNumber(buf, c.lineNum)
	}
	buf = c.appendText(buf, text)
	if terminated {
		if c.opts.ShowEnds {
			buf = append(buf, '$')
		}
		buf = append(buf, '\n')
		c.prevBlank = blank
	} else if len(text) > 0 {
		c.prevBlank = false
	}
	c.midLine = !terminated
	c.buf = buf

	_, err := c.w.Write(buf)
	return err
}

func (c *Cat) numbered(blank bool) bool {
	if c.opts.NumberNonBlank {
		return !blank
	}
	return c.opts.Number
}

// appendNumber right-aligns n in six columns followed by a tab.
func appendNumber(buf []byte, n int) []byte {
	var tmp [20]byte
	digits := strconv.AppendInt(tmp[:0], int64(n), 10)
	for i := len(digits); i < 6; i++ {
		buf = append(buf, ' ')
	}
	buf = append(buf, digits...)
	return append(buf, '\t')
}

func (c *Cat) appendText(buf, text []byte) []byte {
	if !c.opts.ShowNonprinting && !c.opts.ShowTabs {
		return append(buf, text...)
	}
	for _, b := range text {
		buf = c.appendByte(buf, b)
	}
	return buf
}

func (c *Cat) appendByte(buf []byte, b byte) []byte {
	if b == '\t' {
		if c.opts.ShowTabs {
			return append(buf, '^', 'I')
		}
		return append(buf, b)
	}
	if !c.opts.ShowNonprinting {
		return append(buf, b)
	}
	return AppendVisible(buf, b)
}

// AppendVisible appends b in caret and meta notation: control bytes as ^X,
// DEL as ^?, bytes with the high bit set as M- followed by the notation of
// the low seven bits. Tab is shown as ^I only above 127.
func AppendVisible(buf []byte, b byte) []byte {
	if b >= 128 {
		buf = append(buf, 'M', '-')
		b -= 128
	} else if b == '\t' || b == '\n' {
		return append(buf, b)
	}
	switch {
	case b < ' ':
		return append(buf, '^', b+64)
	case b == 127:
		return append(buf, '^', '?')
	}
	return append(buf, b)
}
