package system

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "shot.png")

	require.NoError(t, WriteFile(path, []byte("png"), SharedReadMask))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "png", string(data))
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(SharedReadMask), fi.Mode().Perm())
}

func TestWriteFileReplacesContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")

	require.NoError(t, WriteFile(path, []byte("first"), SharedReadMask))
	require.NoError(t, WriteFile(path, []byte("second"), SharedReadMask))

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	entries, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files are left behind")
}

func TestWriteFileFailsOnDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0755))
	require.NoError(t, ioutil.WriteFile(filepath.Join(target, "keep"), nil, 0644))

	require.Error(t, WriteFile(target, []byte("png"), SharedReadMask))

	entries, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	require.NoError(t, ioutil.WriteFile(path, nil, 0644))

	ok, err := IsFile(path)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = IsFile(dir)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = IsFile(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, ok)
}
