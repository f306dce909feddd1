package system

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// WriteFile writes data to path atomically with permissions perm,
// creating missing parent directories.
// If the write fails, an existing file at path is preserved.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, SharedDirMask); err != nil {
		return trace.ConvertSystemError(err)
	}
	tmp, err := ioutil.TempFile(dir, "."+filepath.Base(path))
	if err != nil {
		return trace.ConvertSystemError(err)
	}

	cleanup := func() {
		err := os.Remove(tmp.Name())
		if err != nil {
			logrus.Warnf("Failed to remove %v: %v.", tmp.Name(), err)
		}
	}

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		cleanup()
		return trace.ConvertSystemError(err)
	}
	if err = tmp.Close(); err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	err = os.Rename(tmp.Name(), path)
	if err != nil {
		cleanup()
		return trace.ConvertSystemError(err)
	}
	return nil
}

// IsFile returns true when path names an existing regular file
func IsFile(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, trace.ConvertSystemError(err)
	}
	return fi.Mode().IsRegular(), nil
}

const (
	// SharedReadMask is the permission of files readable by everyone
	SharedReadMask = 0644
	// SharedDirMask is the permission of directories created for written files
	SharedDirMask = 0755
)
