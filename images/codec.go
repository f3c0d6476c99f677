package images

import (
	"bytes"
	"image"
	"io"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// add bmp, tiff, webp support for image.Decode
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeConfig reads only the header of data and returns its dimensions and format.
func DecodeConfig(data []byte) (image.Config, ImageFormat, error) {
	if len(data) == 0 {
		return image.Config{}, "", errors.Wrap(ErrDecode, "empty image data")
	}
	cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, "", errors.Wrapf(ErrDecode, "reading image header: %v", err)
	}
	return cfg, ImageFormat(name), nil
}

// Decode decodes data into an image, applying any EXIF orientation.
//
// Arguments:
//   - data: The encoded image bytes (jpeg, png, gif, webp, bmp, or tiff).
//
// Returns:
//   - image.Image: The decoded image, at least 1x1.
//   - ImageFormat: The detected format.
//   - error: ErrDecode if the bytes are empty, malformed, or unsupported.
func Decode(data []byte) (image.Image, ImageFormat, error) {
	_, format, err := DecodeConfig(data)
	if err != nil {
		return nil, "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", errors.Wrapf(ErrDecode, "decoding %s image: %v", format, err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, "", errors.Wrapf(ErrDecode, "decoded %s image is empty", format)
	}
	return img, format, nil
}

// Encode encodes img in the given format. An empty format selects PNG.
// PNG and WebP output is lossless.
func Encode(img image.Image, format ImageFormat) (*Image, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatPNG
	}

	var buf bytes.Buffer
	if err := encodeTo(&buf, img, format); err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &Image{
		Format: format,
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// EncodePNG encodes img as PNG for display.
func EncodePNG(img image.Image) ([]byte, error) {
	out, err := Encode(img, FormatPNG)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func encodeTo(w io.Writer, img image.Image, format ImageFormat) error {
	var err error
	switch format {
	case FormatWebP:
		err = webp.Encode(w, img, &webp.Options{Lossless: true})
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(95))
	case FormatGIF:
		err = imaging.Encode(w, img, imaging.GIF)
	case FormatBMP:
		err = imaging.Encode(w, img, imaging.BMP)
	case FormatTIFF:
		err = imaging.Encode(w, img, imaging.TIFF)
	default:
		return InvalidArgument("unsupported image format %q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s image", format)
	}
	return nil
}

// ResizeBytes decodes data, resizes it to fit sizeBase, and returns it as PNG.
func ResizeBytes(data []byte, sizeBase int) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	resized, err := Resize(img, sizeBase, BilinearFilter)
	if err != nil {
		return nil, err
	}
	return EncodePNG(resized)
}

// CropSquareBytes decodes data, crops a centered baseSize square, and returns it as PNG.
func CropSquareBytes(data []byte, baseSize int) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	cropped, err := CropSquare(img, baseSize, BilinearFilter)
	if err != nil {
		return nil, err
	}
	return EncodePNG(cropped)
}
