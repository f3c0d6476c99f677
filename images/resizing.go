package images

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// FitSize computes the dimensions of a width x height image scaled to fit a
// sizeBase x sizeBase box without distortion.
//
// The smaller of sizeBase/width and sizeBase/height is used as the ratio, so
// the larger side lands exactly on sizeBase. Both results are rounded up,
// which keeps them at least 1.
//
// Arguments:
//   - width: The source width in pixels.
//   - height: The source height in pixels.
//   - sizeBase: The target size of the larger side.
//
// Returns:
//   - int: The new width.
//   - int: The new height.
//   - error: ErrInvalidArgument if any argument is not positive.
//
// Example:
//
//	w, h, _ := FitSize(200, 100, 100) // 100, 50
func FitSize(width, height, sizeBase int) (int, int, error) {
	if width <= 0 || height <= 0 {
		return 0, 0, InvalidArgument("invalid dimensions: width=%d, height=%d", width, height)
	}
	if sizeBase <= 0 {
		return 0, 0, InvalidArgument("invalid size base: %d", sizeBase)
	}

	// min(sizeBase/width, sizeBase/height) == sizeBase/max(width, height).
	// Working on integers keeps ceil(d*ratio) exact.
	longest := max(width, height)
	return ceilDiv(width*sizeBase, longest), ceilDiv(height*sizeBase, longest), nil
}

// ceilDiv returns ceil(a/b) for positive a and b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Resize scales img so that it fits a sizeBase x sizeBase box while keeping
// its aspect ratio. The input is never modified and the result is always a
// new buffer owned by the caller.
//
// Arguments:
//   - img: The source image.
//   - sizeBase: The target size of the larger side.
//   - filter: The resampling filter used for interpolation.
//
// Returns:
//   - image.Image: The resized image.
//   - error: ErrInvalidArgument for a nil or empty image or a non-positive size base.
//
// Example:
//
//	thumb, err := Resize(src, 100, BilinearFilter)
func Resize(img image.Image, sizeBase int, filter ResampleFilter) (image.Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height, err := FitSize(bounds.Dx(), bounds.Dy(), sizeBase)
	if err != nil {
		return nil, err
	}

	// Same size: nfnt/resize would hand back img itself, so copy instead.
	if width == bounds.Dx() && height == bounds.Dy() {
		return clone(img), nil
	}

	return resize.Resize(uint(width), uint(height), img, filter.interpolation()), nil
}

// clone copies img into a new NRGBA buffer anchored at the origin.
func clone(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
