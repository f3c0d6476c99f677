package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-thumbs/images"
	"github.com/nvr-ai/go-thumbs/thumbnail"
)

// renderCommand writes the resized and cropped thumbnails next to each other in --out.
func renderCommand(v *viper.Viper) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "render <image>",
		Short: "Write the resized and square thumbnails of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProcessor(v, func(p thumbnail.Processor, logger *zap.Logger) error {
				paths, err := render(cmd.Context(), p, args[0], outDir)
				if err != nil {
					logger.Error("failed to render thumbnails", zap.String("path", args[0]), zap.Error(err))
					return err
				}
				for _, path := range paths {
					logger.Info("wrote thumbnail", zap.String("path", path))
					fmt.Fprintln(cmd.OutOrStdout(), path)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	return cmd
}

// render writes <name>.resized.<ext> and <name>.cropped.<ext> into outDir.
func render(ctx context.Context, p thumbnail.Processor, src, outDir string) ([]string, error) {
	set, err := p.ThumbnailsFromFile(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	var paths []string
	for _, out := range []struct {
		suffix string
		img    *images.Image
	}{
		{suffix: "resized", img: set.Resized},
		{suffix: "cropped", img: set.Cropped},
	} {
		path := filepath.Join(outDir, name+"."+out.suffix+out.img.Format.Extension())
		if err := os.WriteFile(path, out.img.Data, 0o644); err != nil {
			return paths, errors.Wrapf(err, "writing %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// withProcessor builds the logger and processor from the current options.
func withProcessor(v *viper.Viper, fn func(thumbnail.Processor, *zap.Logger) error) error {
	o, err := loadOptions(v)
	if err != nil {
		return err
	}

	logger, err := getLogger(o.DevMode)
	if err != nil {
		return errors.Wrap(err, "building logger")
	}
	defer func() { _ = logger.Sync() }()

	p, err := thumbnail.NewProcessor(o.Config, logger)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return fn(p, logger)
}
