// Package libvips runs the resize and center-square crop operations on encoded
// buffers with libvips. Pixels never enter Go memory: the buffer is loaded,
// scaled, cut and saved inside libvips.
//
// Output sizes match the pure Go implementation because the target
// dimensions come from images.FitSize and images.SquareBaseSize and libvips is
// told to scale to exactly those dimensions.
//
// Usage:
//
//	thumb, err := libvips.CropSquare(data, 100, images.FormatPNG)
//	if err != nil { ... }
//	os.WriteFile("thumb.png", thumb.Data, 0o644)
package libvips

import (
	"github.com/cshum/vipsgen/vips"
	"github.com/pkg/errors"

	"github.com/nvr-ai/go-thumbs/images"
)

// Resize scales the encoded image in data to fit a sizeBase x sizeBase box,
// keeping the aspect ratio, and encodes the result in format.
//
// Arguments:
//   - data: The encoded source image.
//   - sizeBase: The target size of the larger side.
//   - format: The output encoding. Only png, jpeg and webp are supported.
//
// Returns:
//   - *images.Image: The encoded thumbnail.
//   - error: images.ErrDecode when data cannot be loaded, images.ErrInvalidArgument
//     for a non-positive size base or an unsupported format.
func Resize(data []byte, sizeBase int, format images.ImageFormat) (*images.Image, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	img, err := load(data)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	width, height, err := images.FitSize(img.Width(), img.Height(), sizeBase)
	if err != nil {
		return nil, err
	}
	if err := thumbnail(img, width, height); err != nil {
		return nil, err
	}
	return save(img, format)
}

// CropSquare scales the encoded image in data so its shorter side matches
// baseSize, cuts out the centered baseSize x baseSize square and encodes it
// in format.
func CropSquare(data []byte, baseSize int, format images.ImageFormat) (*images.Image, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	img, err := load(data)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	width, height, err := images.SquareIntermediateSize(img.Width(), img.Height(), baseSize)
	if err != nil {
		return nil, err
	}
	if err := thumbnail(img, width, height); err != nil {
		return nil, err
	}

	region := images.CenterSquare(img.Width(), img.Height(), baseSize)
	if err := img.ExtractArea(region.Min.X, region.Min.Y, baseSize, baseSize); err != nil {
		return nil, errors.Wrapf(err, "extracting %v", region)
	}
	return save(img, format)
}

func checkFormat(format images.ImageFormat) error {
	switch format {
	case images.FormatPNG, images.FormatJPEG, images.FormatWebP:
		return nil
	default:
		return images.InvalidArgument("unsupported libvips output format %q", format)
	}
}

func load(data []byte) (*vips.Image, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(images.ErrDecode, "empty image data")
	}
	img, err := vips.NewImageFromBuffer(data, &vips.LoadOptions{
		Access: vips.AccessSequential,
	})
	if err != nil {
		return nil, errors.Wrapf(images.ErrDecode, "loading image: %v", err)
	}
	return img, nil
}

// thumbnail scales img in place to exactly width x height.
func thumbnail(img *vips.Image, width, height int) error {
	err := img.ThumbnailImage(width, &vips.ThumbnailImageOptions{
		Height:   height,
		Size:     vips.SizeForce,
		NoRotate: true,
		FailOn:   vips.FailOnError,
	})
	if err != nil {
		return errors.Wrapf(err, "scaling image to %dx%d", width, height)
	}
	return nil
}

func save(img *vips.Image, format images.ImageFormat) (*images.Image, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case images.FormatJPEG:
		data, err = img.JpegsaveBuffer(&vips.JpegsaveBufferOptions{Q: 95})
	case images.FormatWebP:
		data, err = img.WebpsaveBuffer(&vips.WebpsaveBufferOptions{Lossless: true})
	default:
		data, err = img.PngsaveBuffer(&vips.PngsaveBufferOptions{})
	}
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s image", format)
	}
	if len(data) == 0 {
		return nil, errors.Errorf("encoding %s image produced no data", format)
	}
	return &images.Image{
		Format: format,
		Data:   data,
		Width:  img.Width(),
		Height: img.Height(),
	}, nil
}
