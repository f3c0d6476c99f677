// Command thumbs creates a proportionally resized thumbnail and a
// center-cropped square thumbnail of an image file.
//
// Usage:
//
//	thumbs render photo.jpg --out thumbs/ --size 100
//	thumbs inspect photo.jpg
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "thumbs:", err)
		stop()
		os.Exit(1)
	}
}

// versionCommand prints version information.
func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "thumbs %s (revision %s)\n", Version, Revision)
		},
	}
}
