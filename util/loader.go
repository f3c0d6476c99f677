package util

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-thumbs/images"
)

// ImageFile represents an image file.
type ImageFile struct {
	// Path is the path to the image file.
	Path string
	// Data is the raw bytes of the image file.
	Data []byte
	// Format is the format implied by the file extension.
	Format images.ImageFormat
}

// ReadFile reads the raw bytes of the file at path.
//
// Arguments:
// - path: Path to the file.
//
// Returns:
// - []byte: The file contents.
// - error: images.ErrIO if the file is missing, unreadable, or a directory.
// The underlying os error stays in the chain, so errors.Is(err, fs.ErrNotExist) works.
func ReadFile(path string) ([]byte, error) {
	if path == "" {
		return nil, images.InvalidArgument("empty file path")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", images.ErrIO, err)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(images.ErrIO, "%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", images.ErrIO, err)
	}
	return data, nil
}

// LoadImageFile reads an image file with a supported extension.
//
// Arguments:
// - path: Path to a .jpg, .jpeg, .png, .webp, .gif, .bmp, .tif or .tiff file.
//
// Returns:
// - ImageFile: The path, raw bytes and format of the file.
// - error: images.ErrDecode for unsupported extensions, images.ErrIO if reading fails.
func LoadImageFile(path string) (ImageFile, error) {
	format, ok := images.FormatFromPath(path)
	if !ok {
		return ImageFile{}, errors.Wrapf(images.ErrDecode, "unsupported image file %s", path)
	}

	data, err := ReadFile(path)
	if err != nil {
		return ImageFile{}, err
	}

	return ImageFile{
		Path:   path,
		Data:   data,
		Format: format,
	}, nil
}
