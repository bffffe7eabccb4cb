// Package storage persists serialized crash reports and locates them again
// for inspection. Persistence is single-attempt and fallback-safe: when the
// filesystem is unavailable the report is dumped to stderr instead.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the file extension of persisted reports.
const Ext = ".toml"

const separator = "--------------------"

const notice = `%s has crashed!

A crash report has been saved to %s. To get support for this problem,
please raise an issue on GitHub at %s/issues and include the crash
report to help us better diagnose the problem.
`

// Writer persists a serialized report and prints the operator-facing
// notice. The error stream is injectable for tests.
type Writer struct {
	stderr io.Writer
}

// NewWriter creates a writer. A nil stderr defaults to os.Stderr.
func NewWriter(stderr io.Writer) *Writer {
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Writer{stderr: stderr}
}

// Persist writes content to dir/<id>.toml, creating dir and any missing
// ancestors first. One attempt, no retries: on any failure the full content
// is written to the error stream instead, and no success notice is printed
// since there is no file to point the operator at.
//
// On success it prints a notice naming the application, the absolute report
// path, and where to raise an issue. The returned path is the report file
// location, empty when persistence failed.
func (w *Writer) Persist(content []byte, dir, id, appName, repository string) (string, error) {
	path := filepath.Join(dir, id+Ext)

	err := os.MkdirAll(dir, 0o750)
	if err == nil {
		err = writeFileAtomic(path, content, 0o600)
	}

	if err != nil {
		fmt.Fprintf(w.stderr, "error: failed to save crash report to %s\n", path)
		fmt.Fprintf(w.stderr, "%s\n%v\n%s\n", separator, err, separator)
		fmt.Fprintln(w.stderr, "error: writing crash report directly to stderr")
		fmt.Fprintf(w.stderr, "%s\n%s\n%s\n", separator, strings.TrimRight(string(content), "\n"), separator)
		return "", err
	}

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}
	fmt.Fprintf(w.stderr, notice, appName, abs, repository)

	return path, nil
}
