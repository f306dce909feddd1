package screenshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/testproject-io/robotkeywords/lib/system"

	"github.com/gravitational/trace"
)

// Store persists captured screenshots
type Store interface {
	// Save writes the image under name and returns its location
	Save(ctx context.Context, name string, data []byte) (location string, err error)
	// Exists reports whether an image with the given name was already saved
	Exists(ctx context.Context, name string) (bool, error)
	// Dir returns the location this store writes into
	Dir() string
}

// New returns a store for dir. Directories in the form s3://bucket/prefix
// upload to S3 in the given region, anything else is a local directory.
func New(dir, region string) (Store, error) {
	if strings.HasPrefix(dir, s3Scheme) {
		return NewS3(dir, region)
	}
	return NewLocal(dir)
}

// ResolveName replaces the {index} placeholder in name with the first
// index that does not exist in store yet
func ResolveName(ctx context.Context, store Store, name string) (string, error) {
	if !strings.Contains(name, indexPlaceholder) {
		return name, nil
	}
	for i := 1; i < maxIndex; i++ {
		candidate := strings.Replace(name, indexPlaceholder, fmt.Sprint(i), -1)
		exists, err := store.Exists(ctx, candidate)
		if err != nil {
			return "", trace.Wrap(err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", trace.LimitExceeded("no free index for %q", name)
}

// NewLocal returns a store writing into a local directory, created on demand
func NewLocal(dir string) (*LocalStore, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	return &LocalStore{dir: abs}, nil
}

// LocalStore saves screenshots in a directory on the local filesystem
type LocalStore struct {
	dir string
}

// Dir returns the absolute path of the directory
func (r *LocalStore) Dir() string {
	return r.dir
}

// Save writes data to the file name relative to the store directory.
// Absolute names are written as is.
func (r *LocalStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	path := r.path(name)
	if err := system.WriteFile(path, data, system.SharedReadMask); err != nil {
		return "", trace.Wrap(err)
	}
	return path, nil
}

// Exists checks whether the file is present
func (r *LocalStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(r.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, trace.ConvertSystemError(err)
}

func (r *LocalStore) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.dir, filepath.FromSlash(name))
}

const (
	indexPlaceholder = "{index}"
	maxIndex         = 100000
)
