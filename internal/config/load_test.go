package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// isolate points every config location at an empty temp tree.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing to %s: %v", dir, err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvGeocoderURL, "")
	t.Setenv(EnvGeocoderEmail, "")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/publist/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "publist", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestFindConfigPath_NoneFound(t *testing.T) {
	isolate(t)

	path, err := FindConfigPath("")
	if err != nil {
		t.Fatalf("FindConfigPath() error = %v", err)
	}
	if path != "" {
		t.Errorf("FindConfigPath() = %q, want empty", path)
	}
}

func TestFindConfigPath_Order(t *testing.T) {
	dir := isolate(t)
	global := filepath.Join(dir, "xdg", "publist", "config.yml")
	writeFile(t, global, "latex_file: global.tex\n")

	path, err := FindConfigPath("")
	if err != nil || path != global {
		t.Fatalf("FindConfigPath() = %q, %v; want %q", path, err, global)
	}

	writeFile(t, LocalConfigFile, "latex_file: local.tex\n")
	if path, _ = FindConfigPath(""); path != LocalConfigFile {
		t.Errorf("local file should win over global, got %q", path)
	}

	env := filepath.Join(dir, "env.yml")
	writeFile(t, env, "latex_file: env.tex\n")
	t.Setenv(EnvConfig, env)
	if path, _ = FindConfigPath(""); path != env {
		t.Errorf("$%s should win over local file, got %q", EnvConfig, path)
	}

	flag := filepath.Join(dir, "flag.yml")
	writeFile(t, flag, "latex_file: flag.tex\n")
	if path, _ = FindConfigPath(flag); path != flag {
		t.Errorf("explicit path should win, got %q", path)
	}
}

func TestFindConfigPath_ExplicitMissing(t *testing.T) {
	dir := isolate(t)

	_, err := FindConfigPath(filepath.Join(dir, "missing.yml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("FindConfigPath() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadFromPath_PartialOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publist.yml")
	writeFile(t, path, `papers_dir: pdf
thumbnail:
  height: 200
geocoder:
  email: me@example.org
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.PapersDir != "pdf" {
		t.Errorf("PapersDir = %q, want pdf", cfg.PapersDir)
	}
	if cfg.Thumbnail.Height != 200 || cfg.Thumbnail.Convert != DefaultConvert {
		t.Errorf("Thumbnail = %+v", cfg.Thumbnail)
	}
	if cfg.Geocoder.Email != "me@example.org" || cfg.Geocoder.URL != DefaultGeocoderURL {
		t.Errorf("Geocoder = %+v", cfg.Geocoder)
	}
	if cfg.ThumbsDir != DefaultThumbsDir {
		t.Errorf("ThumbsDir = %q, want default", cfg.ThumbsDir)
	}
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	writeFile(t, path, "papers_dir: [\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() should fail on invalid YAML")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LatexFile != DefaultLatexFile {
		t.Errorf("LatexFile = %q, want %q", cfg.LatexFile, DefaultLatexFile)
	}
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	writeFile(t, LocalConfigFile, "geocoder:\n  rate: 0\n")

	if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	writeFile(t, LocalConfigFile, "geocoder:\n  url: http://file.example\n")
	t.Setenv(EnvGeocoderURL, "http://env.example")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Geocoder.URL != "http://env.example" {
		t.Errorf("Geocoder.URL = %q, want env override", cfg.Geocoder.URL)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	// godotenv never overrides variables that are already set.
	os.Unsetenv(EnvGeocoderEmail)
	writeFile(t, DotEnvFile, EnvGeocoderEmail+"=dotenv@example.org\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Geocoder.Email != "dotenv@example.org" {
		t.Errorf("Geocoder.Email = %q, want value from .env", cfg.Geocoder.Email)
	}
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	isolate(t)
	writeFile(t, DotEnvFile, EnvGeocoderEmail+"=\"unterminated\n")

	if _, err := Load(""); err == nil {
		t.Error("Load() should fail on a malformed .env")
	}
}

func TestLoadFromPath_ExpandsLatexFile(t *testing.T) {
	isolate(t)
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	writeFile(t, LocalConfigFile, "latex_file: ~/cv/publications.tex\n")

	cfg, err := LoadFromPath(LocalConfigFile)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if want := filepath.Join(home, "cv", "publications.tex"); cfg.LatexFile != want {
		t.Errorf("LatexFile = %q, want %q", cfg.LatexFile, want)
	}
}
