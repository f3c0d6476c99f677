package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nvr-ai/go-thumbs/images"
	"github.com/nvr-ai/go-thumbs/thumbnail"
)

// inspectCommand prints the dimensions of an image and its thumbnails without writing anything.
func inspectCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image>",
		Short: "Print the dimensions of an image and its thumbnails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withProcessor(v, func(p thumbnail.Processor, logger *zap.Logger) error {
				set, err := p.ThumbnailsFromFile(cmd.Context(), args[0])
				if err != nil {
					logger.Error("failed to inspect image", zap.String("path", args[0]), zap.Error(err))
					return err
				}
				printSet(cmd.OutOrStdout(), set)
				return nil
			})
		},
	}
}

func printSet(w io.Writer, set *thumbnail.Set) {
	for _, row := range []struct {
		name string
		img  *images.Image
	}{
		{name: "original", img: set.Original},
		{name: "resized", img: set.Resized},
		{name: "cropped", img: set.Cropped},
	} {
		fmt.Fprintf(w, "%-8s %4s %5dx%-5d %d bytes\n", row.name, row.img.Format, row.img.Width, row.img.Height, len(row.img.Data))
	}
}
