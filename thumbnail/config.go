package thumbnail

import (
	"runtime"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-thumbs/images"
)

var (
	// ErrPixelLimitExceeded is returned when the source image, or the scaled image a
	// square thumbnail is cut from, has more pixels than Config.MaxPixels.
	ErrPixelLimitExceeded = errors.New("the image exceeds max pixels limit")
)

// DefaultSize is the display size used when none is configured.
const DefaultSize = 100

// Config configures a Processor.
type Config struct {
	// SizeBase is the target size of the resized thumbnail's larger side and the
	// side length of the square thumbnail.
	SizeBase int `mapstructure:"size" yaml:"size"`
	// Filter is the resample filter name (nearest, bilinear, bicubic, mitchell, lanczos, lanczos3).
	Filter string `mapstructure:"filter" yaml:"filter"`
	// Format is the output encoding (png, jpeg, webp, gif, bmp, tiff).
	Format string `mapstructure:"format" yaml:"format"`
	// MaxPixels is the largest image, in pixels, the processor decodes or scales to.
	MaxPixels int `mapstructure:"maxPixels" yaml:"maxPixels"`
	// Concurrency is the number of images decoded at the same time.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// DefaultConfig returns the configuration used by the thumbs command.
func DefaultConfig() Config {
	return Config{
		SizeBase:    DefaultSize,
		Filter:      images.BilinearFilter.String(),
		Format:      string(images.FormatPNG),
		MaxPixels:   8192 * 8192,
		Concurrency: runtime.NumCPU(),
	}
}

// Validate checks the configuration and returns the parsed filter and format.
func (c Config) Validate() (images.ResampleFilter, images.ImageFormat, error) {
	if c.SizeBase <= 0 {
		return 0, "", images.InvalidArgument("size must be positive, got %d", c.SizeBase)
	}
	if c.MaxPixels <= 0 {
		return 0, "", images.InvalidArgument("maxPixels must be positive, got %d", c.MaxPixels)
	}
	if c.Concurrency <= 0 {
		return 0, "", images.InvalidArgument("concurrency must be positive, got %d", c.Concurrency)
	}

	filter, err := images.ParseResampleFilter(c.Filter)
	if err != nil {
		return 0, "", err
	}

	format := images.FormatPNG
	if c.Format != "" {
		if format, err = images.ParseFormat(c.Format); err != nil {
			return 0, "", err
		}
	}
	return filter, format, nil
}
