package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MAX_LINE_BYTES bounds a single transaction or pattern line.
const MAX_LINE_BYTES = 20 * 1024 * 1024

func CreateScannerFromReader(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, MAX_LINE_BYTES)
	return scanner
}

// StemBeforeFirstDot cuts the file name of path at its first '.' and keeps
// the directory as given: "./run.1/S1.txt" -> "./run.1/S1". Sample halves
// and pattern files are named after it.
func StemBeforeFirstDot(path string) string {
	dir, base := filepath.Split(path)
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}
	return dir + base
}

// DatasetName returns the base file name of path without its extensions.
func DatasetName(path string) string {
	base := filepath.Base(path)
	if idx := strings.Index(base, "."); idx > 0 {
		return base[:idx]
	}
	return base
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
