package artifact

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "taxid_9606_sample.gb", ArchiveName("9606"))
	assert.Equal(t, "taxid_9606_report.csv", ReportName("9606"))
	assert.Equal(t, "taxid_9606_lengths.png", ChartName("9606"))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	st := Store{Dir: dir}

	path, err := st.Write("out.txt", func(w io.Writer) error {
		_, err := io.WriteString(w, "hello\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestWriteFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	st := Store{Dir: dir}

	boom := errors.New("boom")
	_, err := st.Write("out.txt", func(io.Writer) error { return boom })

	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, perr.Path, "out.txt")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial artifact or temp file may remain")
}

func TestWriteBadDirIsPersistError(t *testing.T) {
	st := Store{Dir: filepath.Join(t.TempDir(), "missing")}
	_, err := st.Write("out.txt", func(io.Writer) error { return nil })
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
}
