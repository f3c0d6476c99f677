package images

import (
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is returned for non-positive sizes and degenerate images.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDecode is returned when encoded bytes are malformed or of an unsupported format.
	ErrDecode = errors.New("decode error")
	// ErrIO is returned when a file cannot be read.
	ErrIO = errors.New("io error")
)

// InvalidArgument wraps ErrInvalidArgument with a formatted reason.
func InvalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

// checkImage validates that img is non-nil and at least 1x1.
func checkImage(img image.Image) error {
	if img == nil {
		return InvalidArgument("image is nil")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return InvalidArgument("degenerate image: width=%d, height=%d", b.Dx(), b.Dy())
	}
	return nil
}
