package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-thumbs/images"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.png"), target: images.ErrIO},
		{name: "directory", path: dir, target: images.ErrIO},
		{name: "empty path", path: "", target: images.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			assert.Nil(t, data)
			assert.True(t, errors.Is(err, tt.target), "unexpected error: %v", err)
		})
	}

	_, err := ReadFile(filepath.Join(dir, "missing.png"))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "os error should stay in the chain")
}

func TestLoadImageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Photo.JPG")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8}, 0o600))

	file, err := LoadImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, file.Path)
	assert.Equal(t, images.FormatJPEG, file.Format)
	assert.Len(t, file.Data, 2)

	_, err = LoadImageFile(filepath.Join(dir, "notes.txt"))
	assert.ErrorIs(t, err, images.ErrDecode)

	_, err = LoadImageFile(filepath.Join(dir, "absent.png"))
	assert.ErrorIs(t, err, images.ErrIO)
}
