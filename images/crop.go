package images

import (
	"image"

	"github.com/disintegration/imaging"
)

// SquareBaseSize returns the size base that makes the shorter side of a
// width x height image equal baseSize once passed to FitSize.
//
// The division truncates. FitSize rounds up, so the shorter side of the
// resized image is never below baseSize.
func SquareBaseSize(width, height, baseSize int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, InvalidArgument("invalid dimensions: width=%d, height=%d", width, height)
	}
	if baseSize <= 0 {
		return 0, InvalidArgument("invalid base size: %d", baseSize)
	}
	if width > height {
		return (baseSize * width) / height, nil
	}
	return (baseSize * height) / width, nil
}

// SquareIntermediateSize returns the size of the scaled image CropSquare cuts
// its square from. Callers can use it to bound memory before decoding.
func SquareIntermediateSize(width, height, baseSize int) (int, int, error) {
	newBaseSize, err := SquareBaseSize(width, height, baseSize)
	if err != nil {
		return 0, 0, err
	}
	w, h, err := FitSize(width, height, newBaseSize)
	if err != nil {
		return 0, 0, err
	}
	if w < baseSize || h < baseSize {
		return FitSize(width, height, newBaseSize+1)
	}
	return w, h, nil
}

// CenterSquare returns the size x size region centered on a width x height
// image. The origin is clamped so the region never starts outside the image
// and never runs past its far edge when the image is large enough.
//
// Example:
//
//	r := CenterSquare(200, 100, 100) // (50,0)-(150,100)
func CenterSquare(width, height, size int) image.Rectangle {
	x := clampInt(width/2-size/2, 0, width-size)
	y := clampInt(height/2-size/2, 0, height-size)
	return image.Rect(x, y, x+size, y+size)
}

// clampInt restricts value to [lo, hi]. When hi < lo, lo wins.
func clampInt(value, lo, hi int) int {
	if value > hi {
		value = hi
	}
	if value < lo {
		value = lo
	}
	return value
}

// CropSquare produces a baseSize x baseSize thumbnail from the center of img.
//
// The image is first scaled so that its shorter side matches baseSize, then
// the centered square is copied out. The input is not modified and the
// intermediate buffer is discarded.
//
// Arguments:
//   - img: The source image.
//   - baseSize: The side length of the resulting square.
//   - filter: The resampling filter used for the intermediate resize.
//
// Returns:
//   - *image.NRGBA: A new baseSize x baseSize image.
//   - error: ErrInvalidArgument for a nil or empty image or a non-positive base size.
func CropSquare(img image.Image, baseSize int, filter ResampleFilter) (*image.NRGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	newBaseSize, err := SquareBaseSize(bounds.Dx(), bounds.Dy(), baseSize)
	if err != nil {
		return nil, err
	}

	resized, err := Resize(img, newBaseSize, filter)
	if err != nil {
		return nil, err
	}

	// Guard against a short side below baseSize: grow the size base one step.
	if rb := resized.Bounds(); rb.Dx() < baseSize || rb.Dy() < baseSize {
		if resized, err = Resize(img, newBaseSize+1, filter); err != nil {
			return nil, err
		}
	}

	rb := resized.Bounds()
	region := CenterSquare(rb.Dx(), rb.Dy(), baseSize).Add(rb.Min)
	return imaging.Crop(resized, region), nil
}
