package textio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"no-terminator", "abc", []string{"abc"}},
		{"lf", "a\nb\n", []string{"a\n", "b\n"}},
		{"crlf", "a\r\nb\r\n", []string{"a\r\n", "b\r\n"}},
		{"trailing-partial", "a\nb", []string{"a\n", "b"}},
		{"blank-lines", "\n\n", []string{"\n", "\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitLines(tt.in)); diff != "" {
				t.Errorf("SplitLines(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "log.txt")
	out := filepath.Join(dir, "log_processed.txt")

	// 0xB0 is the degree sign in Windows-1252, invalid as UTF-8.
	raw := []byte("MP 1 = 22.5 \xb0C\r\nS/B 0 to 100\r\n")
	if err := os.WriteFile(in, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := ReadLines(in)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != "MP 1 = 22.5 °C\r\n" {
		t.Errorf("decoded line = %q", lines[0])
	}

	if err := WriteLines(out, lines); err != nil {
		t.Fatalf("WriteLines: %v", err)
	}
	back, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(back) != string(raw) {
		t.Errorf("round-trip bytes = %q, want %q", back, raw)
	}
}
