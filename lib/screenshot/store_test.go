package screenshot

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalStoreResolvesIndex(t *testing.T) {
	dir, err := ioutil.TempDir("", "screenshots")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ctx := context.Background()
	store, err := New(dir, "")
	require.NoError(t, err)
	require.Equal(t, dir, store.Dir())

	name, err := ResolveName(ctx, store, "page-{index}.png")
	require.NoError(t, err)
	require.Equal(t, "page-1.png", name)

	location, err := store.Save(ctx, name, []byte("png"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "page-1.png"), location)

	name, err = ResolveName(ctx, store, "page-{index}.png")
	require.NoError(t, err)
	require.Equal(t, "page-2.png", name)
}

func TestLocalStoreCreatesSubdirectories(t *testing.T) {
	dir, err := ioutil.TempDir("", "screenshots")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	store, err := NewLocal(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	location, err := store.Save(context.Background(), "a/b.png", []byte("png"))
	require.NoError(t, err)
	data, err := ioutil.ReadFile(location)
	require.NoError(t, err)
	require.Equal(t, "png", string(data))
}

func TestResolveNameWithoutPlaceholder(t *testing.T) {
	store, err := NewLocal("")
	require.NoError(t, err)
	name, err := ResolveName(context.Background(), store, "fixed.png")
	require.NoError(t, err)
	require.Equal(t, "fixed.png", name)
}

func TestParseS3URL(t *testing.T) {
	bucket, prefix, err := parseS3URL("s3://shots/runs/42/")
	require.NoError(t, err)
	require.Equal(t, "shots", bucket)
	require.Equal(t, "runs/42", prefix)

	_, _, err = parseS3URL("s3:///missing-bucket")
	require.Error(t, err)
}

func TestS3Key(t *testing.T) {
	store := &S3Store{bucket: "shots", prefix: "runs"}
	require.Equal(t, "runs/page-1.png", store.key("page-1.png"))
	require.Equal(t, "s3://shots/runs", store.Dir())

	store = &S3Store{bucket: "shots"}
	require.Equal(t, "page-1.png", store.key("page-1.png"))
}
