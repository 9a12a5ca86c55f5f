package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the defaults file and environment away from the user's setup.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("GOGREP_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("GOGREP_COLOR", "")
	t.Setenv("GOGREP_LOG_LEVEL", "")
	t.Setenv("NO_COLOR", "")
}

type result struct {
	out  string
	err  string
	code int
}

func grepWithInput(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	isolate(t)
	var out, errb bytes.Buffer
	code := GrepMain(args, Streams{In: strings.NewReader(stdin), Out: &out, Err: &errb})
	return result{out: out.String(), err: errb.String(), code: code}
}

func grep(t *testing.T, args ...string) result {
	t.Helper()
	return grepWithInput(t, "", args...)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGrep_Basic(t *testing.T) {
	dir := t.TempDir()
	animals := writeFile(t, dir, "animals.txt", "cat\ndog\ncat\n")

	tests := []struct {
		name string
		args []string
		want string
		code int
	}{
		{"matching lines", []string{"cat", animals}, "cat\ncat\n", 0},
		{"invert", []string{"-v", "cat", animals}, "dog\n", 0},
		{"count", []string{"-c", "cat", animals}, "2\n", 0},
		{"count inverted", []string{"-c", "-v", "cat", animals}, "1\n", 0},
		{"count no match", []string{"-c", "cow", animals}, "0\n", 1},
		{"line numbers", []string{"-n", "cat", animals}, "1:cat\n3:cat\n", 0},
		{"ignore case", []string{"-i", "DOG", animals}, "dog\n", 0},
		{"no match", []string{"cow", animals}, "", 1},
		{"files with matches", []string{"-l", "dog", animals}, animals + "\n", 0},
		{"count and files", []string{"-l", "-c", "dog", animals}, animals + "\n1\n", 0},
		{"only matching", []string{"-o", "a.", animals}, "at\nat\n", 0},
		{"fixed strings", []string{"-F", "c.t", animals}, "", 1},
		{"perl regexp", []string{"-P", `c(?=at)`, animals}, "cat\ncat\n", 0},
		{"forced filename", []string{"-H", "dog", animals}, animals + ":dog\n", 0},
		{"pattern after file", []string{animals, "-e", "dog"}, "dog\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := grep(t, tt.args...)
			if r.out != tt.want {
				t.Errorf("stdout = %q, want %q", r.out, tt.want)
			}
			if r.code != tt.code {
				t.Errorf("exit = %d, want %d (stderr %q)", r.code, tt.code, r.err)
			}
		})
	}
}

func TestGrep_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "cat\n")
	b := writeFile(t, dir, "b.txt", "dog\ncat\n")

	r := grep(t, "-n", "cat", a, b)
	want := a + ":1:cat\n" + b + ":2:cat\n"
	if r.out != want {
		t.Errorf("stdout = %q, want %q", r.out, want)
	}

	r = grep(t, "-h", "cat", a, b)
	if r.out != "cat\ncat\n" {
		t.Errorf("-h stdout = %q", r.out)
	}

	r = grep(t, "-c", "dog", a, b)
	want = a + ":0\n" + b + ":1\n"
	if r.out != want {
		t.Errorf("-c stdout = %q, want %q", r.out, want)
	}

	r = grep(t, "-l", "cat", a, b)
	want = a + "\n" + b + "\n"
	if r.out != want {
		t.Errorf("-l stdout = %q, want %q", r.out, want)
	}
}

func TestGrep_MissingFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	present := writeFile(t, dir, "present.txt", "cat\n")

	r := grep(t, "cat", missing)
	if r.code != ExitError {
		t.Errorf("exit = %d, want %d", r.code, ExitError)
	}
	if want := "error: " + missing + ": No such file or directory\n"; r.err != want {
		t.Errorf("stderr = %q, want %q", r.err, want)
	}

	// The batch continues past the failure.
	r = grep(t, "cat", missing, present)
	if r.out != present+":cat\n" {
		t.Errorf("stdout = %q", r.out)
	}
	if r.code != ExitError {
		t.Errorf("exit = %d, want %d", r.code, ExitError)
	}

	r = grep(t, "-s", "cat", missing)
	if r.err != "" {
		t.Errorf("-s stderr = %q, want empty", r.err)
	}
	if r.code != ExitError {
		t.Errorf("-s exit = %d, want %d", r.code, ExitError)
	}
}

func TestGrep_Directory(t *testing.T) {
	dir := t.TempDir()
	r := grep(t, "cat", dir)
	if want := "error: " + dir + ": Is a directory\n"; r.err != want {
		t.Errorf("stderr = %q, want %q", r.err, want)
	}
	if r.code != ExitError {
		t.Errorf("exit = %d, want %d", r.code, ExitError)
	}
}

func TestGrep_PatternSources(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.txt", "alpha\nbeta\ngamma\ndelta\n")
	pats := writeFile(t, dir, "pats.txt", "beta\ngamma\n")
	empty := writeFile(t, dir, "empty.txt", "")

	r := grep(t, "-e", "alpha", "-f", pats, data)
	if r.out != "alpha\nbeta\ngamma\n" || r.code != 0 {
		t.Errorf("-e -f: stdout = %q exit = %d", r.out, r.code)
	}

	// With -e the first positional is a file, not a pattern.
	r = grep(t, "-e", "delta", data)
	if r.out != "delta\n" {
		t.Errorf("-e stdout = %q", r.out)
	}

	missing := filepath.Join(dir, "nope.txt")
	r = grep(t, "-f", missing, data)
	if r.code != ExitError {
		t.Errorf("missing -f exit = %d, want %d", r.code, ExitError)
	}
	if want := "error: " + missing + ": No such file or directory\n"; r.err != want {
		t.Errorf("missing -f stderr = %q, want %q", r.err, want)
	}

	r = grep(t, "-f", empty, data)
	if r.out != "" || r.code != ExitNoMatch {
		t.Errorf("empty set: stdout = %q exit = %d", r.out, r.code)
	}

	// An empty set still reports unreadable files.
	r = grep(t, "-f", empty, filepath.Join(dir, "gone.txt"))
	if r.code != ExitError || !strings.Contains(r.err, "No such file or directory") {
		t.Errorf("empty set with missing file: exit = %d stderr = %q", r.code, r.err)
	}
}

func TestGrep_Stdin(t *testing.T) {
	r := grepWithInput(t, "one\ntwo\nthree\n", "t")
	if r.out != "two\nthree\n" || r.code != 0 {
		t.Errorf("stdout = %q exit = %d", r.out, r.code)
	}

	r = grepWithInput(t, "one\ntwo\n", "-H", "two", "-")
	if r.out != "(standard input):two\n" {
		t.Errorf("named stdin stdout = %q", r.out)
	}
}

func TestGrep_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no pattern", nil},
		{"unknown flag", []string{"--bogus", "x"}},
		{"fixed and pcre", []string{"-F", "-P", "x"}},
		{"json and only matching", []string{"--json", "-o", "x"}},
		{"bad color", []string{"--color=sometimes", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := grep(t, tt.args...)
			if r.code != ExitError {
				t.Errorf("exit = %d, want %d", r.code, ExitError)
			}
			if !strings.Contains(r.err, "Try 'gogrep --help'") {
				t.Errorf("stderr = %q, want usage hint", r.err)
			}
		})
	}
}

func TestGrep_InvalidPattern(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.txt", "x\n")
	r := grep(t, "a(", data)
	if r.code != ExitError {
		t.Errorf("exit = %d, want %d", r.code, ExitError)
	}
	if !strings.Contains(r.err, "invalid pattern") {
		t.Errorf("stderr = %q", r.err)
	}
}

func TestGrep_Help(t *testing.T) {
	r := grep(t, "--help")
	if r.code != 0 {
		t.Errorf("exit = %d, want 0", r.code)
	}
	if !strings.Contains(r.out, "gogrep [OPTION]...") || !strings.Contains(r.out, "--no-filename") {
		t.Errorf("help output = %q", r.out)
	}
}

func TestGrep_Color(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.txt", "a cat here\n")

	r := grep(t, "--color=always", "cat", data)
	if !strings.Contains(r.out, "\x1b[") || !strings.Contains(r.out, "cat") {
		t.Errorf("--color=always stdout = %q, want escapes", r.out)
	}

	r = grep(t, "--color=never", "cat", data)
	if r.out != "a cat here\n" {
		t.Errorf("--color=never stdout = %q", r.out)
	}

	// auto with a non-terminal sink stays plain.
	r = grep(t, "--color", "cat", data)
	if r.out != "a cat here\n" {
		t.Errorf("--color stdout = %q", r.out)
	}
}

func TestGrep_JSON(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.txt", "cat\ndog\n")

	r := grep(t, "--json", "-H", "dog", data)
	var got struct {
		Type    string `json:"type"`
		File    string `json:"file"`
		LineNum int    `json:"line_number"`
		Text    string `json:"text"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(r.out)), &got); err != nil {
		t.Fatalf("unmarshal %q: %v", r.out, err)
	}
	if got.Type != "match" || got.File != data || got.LineNum != 2 || got.Text != "dog" {
		t.Errorf("json = %+v", got)
	}
}

func TestGrep_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "skip/\n")
	a := writeFile(t, dir, "a.txt", "needle\n")
	b := writeFile(t, dir, "sub/b.txt", "hay\nneedle\n")
	writeFile(t, dir, "skip/c.txt", "needle\n")
	writeFile(t, dir, ".hidden/d.txt", "needle\n")
	writeFile(t, dir, "bin.dat", "needle\x00\n")

	r := grep(t, "-r", "-n", "needle", dir)
	want := a + ":1:needle\n" + b + ":2:needle\n"
	if r.out != want {
		t.Errorf("stdout = %q, want %q", r.out, want)
	}
	if r.code != 0 {
		t.Errorf("exit = %d (stderr %q)", r.code, r.err)
	}

	r = grep(t, "-r", "-l", "--hidden", "--no-ignore", "needle", dir)
	if n := strings.Count(r.out, "\n"); n != 4 {
		t.Errorf("--hidden --no-ignore listed %d files: %q", n, r.out)
	}
}

func TestGrep_DefaultsFile(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "data.txt", "Cat\n")
	conf := writeFile(t, dir, "config.yaml", "line_number: true\nignore_case: true\ncolor: never\n")

	isolate(t)
	t.Setenv("GOGREP_CONFIG_PATH", conf)
	var out, errb bytes.Buffer
	code := GrepMain([]string{"cat", data}, Streams{In: strings.NewReader(""), Out: &out, Err: &errb})
	if code != 0 || out.String() != "1:Cat\n" {
		t.Errorf("stdout = %q exit = %d stderr = %q", out.String(), code, errb.String())
	}
}
