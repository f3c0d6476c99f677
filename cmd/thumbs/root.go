package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nvr-ai/go-thumbs/thumbnail"
)

var (
	// Version is the release version, set at build time with -ldflags "-X main.Version=...".
	Version = "dev"
	// Revision is the VCS revision the binary was built from, set with -ldflags.
	Revision = "local"
)

// options holds everything read from flags, environment and the config file.
type options struct {
	// DevMode switches the logger to a colored console encoder at debug level.
	DevMode bool `mapstructure:"dev" yaml:"dev"`

	thumbnail.Config `mapstructure:",squash" yaml:",inline"`
}

// newRootCommand builds the thumbs command tree around its own viper instance.
func newRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "thumbs",
		Short:         "Create resized and center-cropped thumbnails of an image",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfig(v, configFile)
		},
	}

	defaults := thumbnail.DefaultConfig()
	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file path")
	flags.Bool("dev", false, "development mode (debug console logging)")
	flags.Int("size", defaults.SizeBase, "thumbnail size in pixels")
	flags.String("filter", defaults.Filter, "resample filter: nearest, bilinear, bicubic, mitchell, lanczos, lanczos3")
	flags.String("format", defaults.Format, "output format: png, jpeg, webp, gif, bmp, tiff")
	flags.Int("max-pixels", defaults.MaxPixels, "largest accepted source image in pixels")
	flags.Int("concurrency", defaults.Concurrency, "number of images decoded at once")

	bindPFlag(v, flags, "dev", "dev")
	bindPFlag(v, flags, "size", "size")
	bindPFlag(v, flags, "filter", "filter")
	bindPFlag(v, flags, "format", "format")
	bindPFlag(v, flags, "maxPixels", "max-pixels")
	bindPFlag(v, flags, "concurrency", "concurrency")

	root.AddCommand(renderCommand(v))
	root.AddCommand(inspectCommand(v))
	root.AddCommand(versionCommand())
	return root
}

func readConfig(v *viper.Viper, configFile string) error {
	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("THUMBS")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return errors.Wrap(err, "failed to read config file")
		}
	}
	return nil
}

func loadOptions(v *viper.Viper) (options, error) {
	var o options
	if err := v.Unmarshal(&o); err != nil {
		return options{}, errors.Wrap(err, "failed to decode config")
	}
	return o, nil
}

func bindPFlag(v *viper.Viper, flags *pflag.FlagSet, key, flag string) {
	if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(err)
	}
}

func getLogger(devMode bool) (*zap.Logger, error) {
	if devMode {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build(zap.Fields(zap.String("version", Version+"."+Revision)))
}
