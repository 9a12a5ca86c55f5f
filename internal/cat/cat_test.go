package cat

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func run(t *testing.T, opts Options, inputs ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(&out, opts)
	for _, in := range inputs {
		if err := c.Copy(strings.NewReader(in)); err != nil {
			t.Fatalf("Copy: %v", err)
		}
	}
	return out.String()
}

func TestCat_Transforms(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		in   string
		want string
	}{
		{"plain", Options{}, "a\x01\tb\n\n", "a\x01\tb\n\n"},
		{"number", Options{Number: true}, "a\n\nb\n", "     1\ta\n     2\t\n     3\tb\n"},
		{"number nonblank", Options{NumberNonBlank: true}, "a\n\nb\n", "     1\ta\n\n     2\tb\n"},
		{"nonblank overrides number", Options{Number: true, NumberNonBlank: true}, "a\n\nb\n", "     1\ta\n\n     2\tb\n"},
		{"squeeze", Options{SqueezeBlank: true}, "a\n\n\n\nb\n\n", "a\n\nb\n\n"},
		{"squeeze leading blanks", Options{SqueezeBlank: true}, "\n\n\na\n", "\na\n"},
		{"squeeze and number", Options{SqueezeBlank: true, Number: true}, "a\n\n\nb\n", "     1\ta\n     2\t\n     3\tb\n"},
		{"show ends", Options{ShowEnds: true}, "a\n\nb", "a$\n$\nb"},
		{"show tabs", Options{ShowTabs: true}, "a\tb\x01\n", "a^Ib\x01\n"},
		{"nonprinting keeps tab", Options{ShowNonprinting: true}, "a\tb\x01\x7f\n", "a\tb^A^?\n"},
		{"nonprinting meta", Options{ShowNonprinting: true}, "\x80\x89\xc1\xff\n", "M-^@M-^IM-AM-^?\n"},
		{"show all", Options{ShowNonprinting: true, ShowTabs: true, ShowEnds: true}, "\t\x1b\n", "^I^[$\n"},
		{"unterminated last line", Options{Number: true}, "a\nb", "     1\ta\n     2\tb"},
		{"empty input", Options{Number: true}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(t, tt.opts, tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCat_StateCarriesAcrossInputs(t *testing.T) {
	got := run(t, Options{Number: true}, "a\nb\n", "c\n")
	want := "     1\ta\n     2\tb\n     3\tc\n"
	if got != want {
		t.Errorf("numbering: got %q, want %q", got, want)
	}

	got = run(t, Options{Number: true}, "a\nb", "c\n")
	want = "     1\ta\n     2\tbc\n"
	if got != want {
		t.Errorf("joined line: got %q, want %q", got, want)
	}

	got = run(t, Options{SqueezeBlank: true}, "a\n\n", "\nb\n")
	want = "a\n\nb\n"
	if got != want {
		t.Errorf("squeeze: got %q, want %q", got, want)
	}
}

func TestAppendVisible(t *testing.T) {
	tests := []struct {
		in   byte
		want string
	}{
		{'a', "a"},
		{0, "^@"},
		{'\n', "\n"},
		{'\t', "\t"},
		{0x7f, "^?"},
		{0x80 + '\t', "M-^I"},
		{0x80 + 'z', "M-z"},
		{0xa0, "M- "},
	}
	for _, tt := range tests {
		if got := string(AppendVisible(nil, tt.in)); got != tt.want {
			t.Errorf("AppendVisible(%#x) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestCat_WriteError(t *testing.T) {
	c := New(failWriter{}, Options{Number: true})
	if err := c.Copy(strings.NewReader("a\n")); err == nil {
		t.Fatal("expected write error")
	}
}
