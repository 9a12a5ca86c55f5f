package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
)

// Styles holds the lipgloss styles for output formatting. The zero value
// and NoStyles render text unchanged.
type Styles struct {
	Filename  lipgloss.Style
	LineNum   lipgloss.Style
	Separator lipgloss.Style
	Match     lipgloss.Style
	enabled   bool
}

// NewStyles creates the default color styles. The decision to color has
// already been made, so the renderer is pinned to plain ANSI output.
func NewStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Styles{
		Filename:  base.Foreground(lipgloss.Color("5")).Bold(true), // bold magenta
		LineNum:   base.Foreground(lipgloss.Color("2")),            // green
		Separator: base.Foreground(lipgloss.Color("6")),            // cyan
		Match:     base.Foreground(lipgloss.Color("1")).Bold(true), // bold red
		enabled:   true,
	}
}

// NoStyles returns styles with no coloring.
func NoStyles() Styles {
	return Styles{}
}

// Enabled reports whether the styles emit escape sequences.
func (s Styles) Enabled() bool {
	return s.enabled
}

// render appends text framed by style st, or text alone when coloring is off.
func (s Styles) render(buf []byte, st lipgloss.Style, text []byte) []byte {
	if !s.enabled || len(text) == 0 {
		return append(buf, text...)
	}
	return append(buf, st.Render(string(text))...)
}

// IsTerminal checks if the given file descriptor is a terminal using ioctl.
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}

// StdoutIsTerminal returns true if stdout is a terminal.
func StdoutIsTerminal() bool {
	return IsTerminal(os.Stdout.Fd())
}
