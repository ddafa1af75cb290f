package runtime

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readAllLines(t *testing.T, input string) []string {
	t.Helper()
	lr := NewLineReader(strings.NewReader(input))
	var lines []string
	for {
		line, err := lr.Next()
		if err == io.EOF {
			return lines
		}
		if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, line)
	}
}

func TestLineReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"one line", "a\n", []string{"a\n"}},
		{"several", "a\nb\nc\n", []string{"a\n", "b\n", "c\n"}},
		{"unterminated final", "a\nb", []string{"a\n", "b"}},
		{"blank lines kept", "a\n\nb\n", []string{"a\n", "\n", "b\n"}},
		{"crlf untouched", "a\r\n", []string{"a\r\n"}},
		{"lone newline", "\n", []string{"\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAllLines(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("lines = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineReaderRoundTrip(t *testing.T) {
	input := "one\ntwo\nthree"
	var sb strings.Builder
	for _, line := range readAllLines(t, input) {
		sb.WriteString(line)
	}
	if sb.String() != input {
		t.Errorf("round trip = %q, want %q", sb.String(), input)
	}
}

func TestOpenInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte("old content\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := OpenInPlace(path)
	if err != nil {
		t.Fatal(err)
	}

	content, err := io.ReadAll(f.Reader())
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "old content\n" {
		t.Errorf("read side = %q", content)
	}

	if _, err := io.WriteString(f.Writer(), "new content\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	rewritten, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(rewritten) != "new content\n" {
		t.Errorf("original path = %q", rewritten)
	}

	backup, err := os.ReadFile(path + "~")
	if err != nil {
		t.Fatal(err)
	}
	if string(backup) != "old content\n" {
		t.Errorf("backup = %q", backup)
	}
}

func TestOpenInPlaceMissingFile(t *testing.T) {
	if _, err := OpenInPlace(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
