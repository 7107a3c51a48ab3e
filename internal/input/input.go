package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrFileNotFound is returned by ReadFile when the path does not exist.
var ErrFileNotFound = errors.New("file not found")

const maxLineSize = 1 << 20

// ReadLines returns every non-blank line of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	lines := make([]string, 0, 64)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

// ReadFile reads a newline-delimited URL file.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadLines(f)
}

// Collect picks the URL source: a single url wins over a file, and a file
// wins over stdin.
func Collect(url, file string, stdin io.Reader) ([]string, error) {
	switch {
	case url != "":
		return []string{url}, nil
	case file != "":
		return ReadFile(file)
	case stdin != nil:
		return ReadLines(stdin)
	default:
		return nil, nil
	}
}
