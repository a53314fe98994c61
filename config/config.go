// Package config loads runtime settings for the media points tools from an optional YAML file
// and MEDIAPOINTS_* environment variables.
package config

import (
	"fmt"
	"github.com/sfomuseum/go-media-points/export"
	"github.com/spf13/viper"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// The maximum number of image points in a sampled view.
	MaxPlotPoints int `mapstructure:"max_plot_points"`
	// The number of images whose metadata is extracted at once.
	ImageWorkers int `mapstructure:"image_workers"`
	// The IANA time zone used to interpret capture times, which images record without a zone.
	Timezone string       `mapstructure:"timezone"`
	Log      LogConfig    `mapstructure:"log"`
	Export   ExportConfig `mapstructure:"export"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ExportConfig struct {
	// Empty means no export.
	Format    string `mapstructure:"format"`
	WriterURI string `mapstructure:"writer_uri"`
}

// Load reads configuration from path, if not empty, and environment variables. Environment
// variables take precedence: MEDIAPOINTS_EXPORT_WRITER_URI sets export.writer_uri.
func Load(path string) (*Config, error) {

	v := viper.New()

	v.SetDefault("max_plot_points", 10000)
	v.SetDefault("image_workers", 1)
	v.SetDefault("timezone", "UTC")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("export.format", "")
	v.SetDefault("export.writer_uri", "stdout://")

	if path != "" {

		v.SetConfigFile(path)

		err := v.ReadInConfig()

		if err != nil {
			return nil, fmt.Errorf("Failed to read config file %s, %w", path, err)
		}
	}

	v.SetEnvPrefix("MEDIAPOINTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config

	err := v.Unmarshal(&cfg)

	if err != nil {
		return nil, fmt.Errorf("Failed to unmarshal config, %w", err)
	}

	err = cfg.Validate()

	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every setting is usable and reports all of the ones that are not.
func (c *Config) Validate() error {

	var errs []string

	if c.MaxPlotPoints < 1 {
		errs = append(errs, fmt.Sprintf("max_plot_points must be positive, got %d", c.MaxPlotPoints))
	}

	if c.ImageWorkers < 1 {
		errs = append(errs, fmt.Sprintf("image_workers must be positive, got %d", c.ImageWorkers))
	}

	_, err := time.LoadLocation(c.Timezone)

	if err != nil {
		errs = append(errs, fmt.Sprintf("timezone '%s' is not a valid location", c.Timezone))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		// pass
	default:
		errs = append(errs, fmt.Sprintf("log.level must be one of debug, info, warn or error, got '%s'", c.Log.Level))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
		// pass
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got '%s'", c.Log.Format))
	}

	if c.Export.Format != "" {

		_, err := export.ParseFormat(c.Export.Format)

		if err != nil {
			errs = append(errs, fmt.Sprintf("export.format '%s' is not supported", c.Export.Format))
		}

		if c.Export.WriterURI == "" {
			errs = append(errs, "export.writer_uri is required when export.format is set")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("Invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location returns the time.Location named by Timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
