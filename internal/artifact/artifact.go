// internal/artifact/artifact.go
package artifact

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PersistError wraps any failure while writing an output artifact. Persist
// failures abort remaining output steps; they are never swallowed.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("artifact: write %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Deterministic artifact names, keyed by taxid.
func ArchiveName(taxid string) string { return fmt.Sprintf("taxid_%s_sample.gb", taxid) }
func ReportName(taxid string) string  { return fmt.Sprintf("taxid_%s_report.csv", taxid) }
func ChartName(taxid string) string   { return fmt.Sprintf("taxid_%s_lengths.png", taxid) }

// Store writes artifacts into one directory.
type Store struct {
	Dir string
}

// Write persists one artifact all-or-nothing: content goes to a temp file in
// the target directory, then is renamed into place. On any failure the temp
// file is removed and a *PersistError is returned.
func (s Store) Write(name string, emit func(io.Writer) error) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return "", &PersistError{Path: path, Err: err}
	}
	tmpPath := tmp.Name()
	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", &PersistError{Path: path, Err: err}
	}

	bw := bufio.NewWriter(tmp)
	if err := emit(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", &PersistError{Path: path, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", &PersistError{Path: path, Err: err}
	}
	return path, nil
}
