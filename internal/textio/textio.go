// Package textio reads and writes test logs in their native Windows-1252
// encoding, splitting them into lines that keep their original terminators
// so a rewritten document stays byte-faithful outside the resolved markers.
package textio

// #region imports
import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// #endregion

// #region read

// ReadLines decodes a Windows-1252 file into lines. Each line keeps its
// terminator ("\n" or "\r\n"); the final line may have none.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	decoded, err := io.ReadAll(charmap.Windows1252.NewDecoder().Reader(f))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return SplitLines(string(decoded)), nil
}

// SplitLines splits after every "\n", keeping terminators in place.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// #endregion

// #region write

// WriteLines encodes lines back to Windows-1252 and writes them to path.
// Runes the codepage cannot represent are substituted rather than failing
// the whole file.
func WriteLines(path string, lines []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	w := enc.Writer(f)
	if _, err := io.WriteString(w, strings.Join(lines, "")); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// #endregion
