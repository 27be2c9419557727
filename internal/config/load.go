package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// LocalConfigFile is looked up in the working directory.
	LocalConfigFile = "publist.yml"
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "publist"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	EnvConfig        = "PUBLIST_CONFIG"
	EnvGeocoderURL   = "PUBLIST_GEOCODER_URL"
	EnvGeocoderEmail = "PUBLIST_GEOCODER_EMAIL"
	DotEnvFile       = ".env"
)

// ErrConfigNotFound is returned when an explicitly named config file is
// missing. Implicit locations fall back to defaults instead.
var ErrConfigNotFound = errors.New("config file not found")

// GlobalConfigPath returns the path to the per-user config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/publist/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// FindConfigPath resolves the config file. An explicit path (flag, then
// $PUBLIST_CONFIG) must exist. Otherwise ./publist.yml and then the global
// file are tried; "" means none was found.
func FindConfigPath(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		path := ExpandPath(explicit)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return path, nil
	}

	for _, path := range []string{LocalConfigFile, GlobalConfigPath()} {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", nil
}

// LoadFromPath reads a YAML config file over the defaults. Keys absent from
// the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.PapersDir = ExpandPath(cfg.PapersDir)
	cfg.ThumbsDir = ExpandPath(cfg.ThumbsDir)
	cfg.CacheDir = ExpandPath(cfg.CacheDir)
	cfg.LatexFile = ExpandPath(cfg.LatexFile)
	cfg.Dataset = ExpandPath(cfg.Dataset)
	return cfg, nil
}

// ApplyEnv overrides geocoder settings from the environment.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvGeocoderURL)); v != "" {
		c.Geocoder.URL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGeocoderEmail)); v != "" {
		c.Geocoder.Email = v
	}
}

// Load resolves, reads and validates the configuration. A .env file in the
// working directory is loaded first; variables already set in the process
// environment win over it. A missing .env is fine, a malformed one is not.
func Load(explicit string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

	path, err := FindConfigPath(explicit)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		if cfg, err = LoadFromPath(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
