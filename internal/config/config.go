// Package config handles publist configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the settings read from publist.yml.
type Config struct {
	PapersDir string          `yaml:"papers_dir"` // PDFs named <filename>.pdf
	ThumbsDir string          `yaml:"thumbs_dir"` // thumbnails named <filename>.png
	LatexFile string          `yaml:"latex_file"`
	CacheDir  string          `yaml:"cache_dir"`
	Dataset   string          `yaml:"dataset,omitempty"` // empty uses the embedded tables
	Thumbnail ThumbnailConfig `yaml:"thumbnail"`
	Geocoder  GeocoderConfig  `yaml:"geocoder"`
}

// ThumbnailConfig configures the external image converter.
type ThumbnailConfig struct {
	Convert string `yaml:"convert"`
	Height  int    `yaml:"height"` // pixels
}

// GeocoderConfig configures the Nominatim client.
type GeocoderConfig struct {
	URL       string  `yaml:"url"`
	UserAgent string  `yaml:"user_agent"`
	Email     string  `yaml:"email,omitempty"`
	Rate      float64 `yaml:"rate"` // requests per second
}

const (
	DefaultPapersDir       = "papers"
	DefaultThumbsDir       = "images/thumbs"
	DefaultLatexFile       = "publications.tex"
	DefaultCacheDir        = ".publist"
	DefaultConvert         = "convert"
	DefaultThumbnailHeight = 130
	DefaultGeocoderURL     = "https://nominatim.openstreetmap.org"
	DefaultUserAgent       = "publist/1.0"
	DefaultGeocoderRate    = 1.0

	// CacheFile is the sqlite database under CacheDir.
	CacheFile = "cache.db"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		PapersDir: DefaultPapersDir,
		ThumbsDir: DefaultThumbsDir,
		LatexFile: DefaultLatexFile,
		CacheDir:  DefaultCacheDir,
		Thumbnail: ThumbnailConfig{
			Convert: DefaultConvert,
			Height:  DefaultThumbnailHeight,
		},
		Geocoder: GeocoderConfig{
			URL:       DefaultGeocoderURL,
			UserAgent: DefaultUserAgent,
			Rate:      DefaultGeocoderRate,
		},
	}
}

// CachePath returns the path to the sqlite cache.
func (c *Config) CachePath() string {
	return filepath.Join(c.CacheDir, CacheFile)
}

// Validate checks values a YAML file can get wrong.
func (c *Config) Validate() error {
	if c.Thumbnail.Height <= 0 {
		return fmt.Errorf("%w: thumbnail.height must be positive, got %d", ErrInvalidConfig, c.Thumbnail.Height)
	}
	if c.Geocoder.Rate <= 0 {
		return fmt.Errorf("%w: geocoder.rate must be positive, got %g", ErrInvalidConfig, c.Geocoder.Rate)
	}
	if c.Thumbnail.Convert == "" {
		return fmt.Errorf("%w: thumbnail.convert is empty", ErrInvalidConfig)
	}
	if c.Geocoder.URL == "" {
		return fmt.Errorf("%w: geocoder.url is empty", ErrInvalidConfig)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
