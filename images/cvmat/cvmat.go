// Package cvmat runs the resize and center-square crop operations on native
// OpenCV matrices (via gocv).
//
// Every gocv.Mat returned by this package is owned by the caller and must be
// released with Close(). Intermediates created internally are closed before
// returning.
//
// Usage:
//
//	src, err := cvmat.Decode(data)
//	if err != nil { ... }
//	defer src.Close()
//
//	thumb, err := cvmat.CropSquare(src, 100)
//	if err != nil { ... }
//	defer thumb.Close()
package cvmat

import (
	"crypto/md5"
	"fmt"
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-thumbs/images"
)

// Decode loads encoded image bytes into a color Mat.
func Decode(data []byte) (gocv.Mat, error) {
	if len(data) == 0 {
		return gocv.NewMat(), errors.Wrap(images.ErrDecode, "empty image data")
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return gocv.NewMat(), errors.Wrapf(images.ErrDecode, "decoding image: %v", err)
	}
	if mat.Empty() {
		mat.Close()
		return gocv.NewMat(), errors.Wrap(images.ErrDecode, "failed to decode image")
	}
	return mat, nil
}

// Resize scales src to fit a sizeBase x sizeBase box, keeping the aspect
// ratio. The dimensions match images.FitSize.
//
// Arguments:
//   - src: The source matrix. It is not modified.
//   - sizeBase: The target size of the larger side.
//
// Returns:
//   - gocv.Mat: A new matrix the caller must Close.
//   - error: images.ErrInvalidArgument for an empty source or non-positive size base.
func Resize(src gocv.Mat, sizeBase int) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), images.InvalidArgument("source matrix is empty")
	}

	width, height, err := images.FitSize(src.Cols(), src.Rows(), sizeBase)
	if err != nil {
		return gocv.NewMat(), err
	}

	dst := gocv.NewMat()
	if width == src.Cols() && height == src.Rows() {
		if err := src.CopyTo(&dst); err != nil {
			dst.Close()
			return gocv.NewMat(), fmt.Errorf("failed to copy matrix: %w", err)
		}
		return dst, nil
	}

	if err := gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationLinear); err != nil {
		dst.Close()
		return gocv.NewMat(), fmt.Errorf("failed to resize matrix: %w", err)
	}
	return dst, nil
}

// CropSquare scales src so its shorter side matches baseSize and returns the
// centered baseSize x baseSize region as a new continuous matrix.
func CropSquare(src gocv.Mat, baseSize int) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), images.InvalidArgument("source matrix is empty")
	}

	newBaseSize, err := images.SquareBaseSize(src.Cols(), src.Rows(), baseSize)
	if err != nil {
		return gocv.NewMat(), err
	}

	resized, err := Resize(src, newBaseSize)
	if err != nil {
		return gocv.NewMat(), err
	}

	// Guard against a short side below baseSize: grow the size base one step.
	if resized.Cols() < baseSize || resized.Rows() < baseSize {
		resized.Close()
		if resized, err = Resize(src, newBaseSize+1); err != nil {
			return gocv.NewMat(), err
		}
	}
	defer resized.Close()

	if resized.Cols() < baseSize || resized.Rows() < baseSize {
		return gocv.NewMat(), images.InvalidArgument("resized matrix %dx%d is smaller than %d", resized.Cols(), resized.Rows(), baseSize)
	}

	region := resized.Region(images.CenterSquare(resized.Cols(), resized.Rows(), baseSize))
	defer region.Close()

	// The region shares memory with resized, so detach it before returning.
	return region.Clone(), nil
}

// EncodePNG encodes a matrix as PNG bytes.
func EncodePNG(m gocv.Mat) ([]byte, error) {
	if m.Empty() {
		return nil, images.InvalidArgument("matrix is empty")
	}
	buf, err := gocv.IMEncode(gocv.PNGFileExt, m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode matrix: %w", err)
	}
	defer buf.Close()

	// GetBytes points into native memory owned by buf.
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// Checksum generates a deterministic checksum of the matrix pixel data.
//
// Example:
//
//	sum := Checksum(thumb)
//	fmt.Printf("thumbnail checksum: %s\n", sum)
func Checksum(m gocv.Mat) string {
	if m.Empty() {
		return "empty"
	}

	data, err := m.DataPtrUint8()
	if err != nil {
		return "invalid"
	}
	hash := md5.New()
	hash.Write(data)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
