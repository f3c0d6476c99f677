// Package thumbnail turns encoded image bytes into a resized thumbnail and a
// center-cropped square thumbnail, ready for display.
package thumbnail

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/nvr-ai/go-thumbs/images"
	"github.com/nvr-ai/go-thumbs/util"
)

// Set holds the display versions of one source image.
type Set struct {
	// Original is the source image re-encoded in the output format.
	Original *images.Image
	// Resized fits a SizeBase x SizeBase box with the source aspect ratio.
	Resized *images.Image
	// Cropped is exactly SizeBase x SizeBase, taken from the center.
	Cropped *images.Image
}

// Processor produces thumbnails from encoded images.
type Processor interface {
	// Resize returns the aspect-preserving thumbnail of data.
	Resize(ctx context.Context, data []byte) (*images.Image, error)
	// CropSquare returns the centered square thumbnail of data.
	CropSquare(ctx context.Context, data []byte) (*images.Image, error)
	// Thumbnails returns the original, resized and cropped versions of data.
	Thumbnails(ctx context.Context, data []byte) (*Set, error)
	// ThumbnailsFromFile reads the image at path and returns its Set.
	ThumbnailsFromFile(ctx context.Context, path string) (*Set, error)
}

type defaultProcessor struct {
	c      Config
	filter images.ResampleFilter
	format images.ImageFormat
	sp     *semaphore.Weighted
	logger *zap.Logger
}

// NewProcessor returns a Processor for c. A nil logger disables logging.
func NewProcessor(c Config, logger *zap.Logger) (Processor, error) {
	filter, format, err := c.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid thumbnail config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &defaultProcessor{
		c:      c,
		filter: filter,
		format: format,
		sp:     semaphore.NewWeighted(int64(c.Concurrency)),
		logger: logger.Named("thumbnail"),
	}, nil
}

func (p *defaultProcessor) Resize(ctx context.Context, data []byte) (*images.Image, error) {
	var out *images.Image
	err := p.withImage(ctx, data, false, func(src image.Image) error {
		resized, err := images.Resize(src, p.c.SizeBase, p.filter)
		if err != nil {
			return err
		}
		out, err = p.encode(resized)
		return err
	})
	return out, err
}

func (p *defaultProcessor) CropSquare(ctx context.Context, data []byte) (*images.Image, error) {
	var out *images.Image
	err := p.withImage(ctx, data, true, func(src image.Image) error {
		cropped, err := images.CropSquare(src, p.c.SizeBase, p.filter)
		if err != nil {
			return err
		}
		out, err = p.encode(cropped)
		return err
	})
	return out, err
}

func (p *defaultProcessor) Thumbnails(ctx context.Context, data []byte) (*Set, error) {
	set := &Set{}
	err := p.withImage(ctx, data, true, func(src image.Image) error {
		var err error
		if set.Original, err = p.encode(src); err != nil {
			return err
		}

		resized, err := images.Resize(src, p.c.SizeBase, p.filter)
		if err != nil {
			return err
		}
		if set.Resized, err = p.encode(resized); err != nil {
			return err
		}

		cropped, err := images.CropSquare(src, p.c.SizeBase, p.filter)
		if err != nil {
			return err
		}
		set.Cropped, err = p.encode(cropped)
		return err
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (p *defaultProcessor) ThumbnailsFromFile(ctx context.Context, path string) (*Set, error) {
	file, err := util.LoadImageFile(path)
	if err != nil {
		p.logger.Warn("failed to load image file", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return p.Thumbnails(ctx, file.Data)
}

// withImage checks the pixel limit, waits for a processing slot, decodes data
// and passes the image to fn. With crop set, the scaled image the square is
// cut from must fit the limit too.
func (p *defaultProcessor) withImage(ctx context.Context, data []byte, crop bool, fn func(image.Image) error) error {
	cfg, format, err := images.DecodeConfig(data)
	if err != nil {
		p.logger.Warn("rejected image", zap.Error(err))
		return err
	}

	// Pixel limit is checked on the header alone, before any pixel is decoded.
	if cfg.Width*cfg.Height > p.c.MaxPixels {
		p.logger.Warn("rejected image",
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height),
			zap.Int("maxPixels", p.c.MaxPixels))
		return errors.Wrapf(ErrPixelLimitExceeded, "%dx%d", cfg.Width, cfg.Height)
	}
	if crop {
		w, h, err := images.SquareIntermediateSize(cfg.Width, cfg.Height, p.c.SizeBase)
		if err != nil {
			return err
		}
		if w > p.c.MaxPixels/h {
			p.logger.Warn("rejected image",
				zap.Int("width", cfg.Width),
				zap.Int("height", cfg.Height),
				zap.Int("scaledWidth", w),
				zap.Int("scaledHeight", h),
				zap.Int("maxPixels", p.c.MaxPixels))
			return errors.Wrapf(ErrPixelLimitExceeded, "%dx%d scales to %dx%d before cropping", cfg.Width, cfg.Height, w, h)
		}
	}

	if err := p.sp.Acquire(ctx, 1); err != nil {
		return errors.Wrap(err, "waiting for a processing slot")
	}
	defer p.sp.Release(1)

	src, _, err := images.Decode(data)
	if err != nil {
		p.logger.Warn("rejected image", zap.Error(err))
		return err
	}

	p.logger.Debug("decoded image",
		zap.String("format", string(format)),
		zap.Int("width", src.Bounds().Dx()),
		zap.Int("height", src.Bounds().Dy()))

	return fn(src)
}

func (p *defaultProcessor) encode(img image.Image) (*images.Image, error) {
	out, err := images.Encode(img, p.format)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("encoded image",
		zap.String("format", string(out.Format)),
		zap.Int("width", out.Width),
		zap.Int("height", out.Height),
		zap.Int("bytes", len(out.Data)))
	return out, nil
}
