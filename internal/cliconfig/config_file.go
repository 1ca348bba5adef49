package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Destination   string `toml:"destination"`
	BundleDir     string `toml:"bundle_dir"`
	HTTPTimeout   string `toml:"http_timeout"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	Preview       *bool  `toml:"preview"`
	DebounceDelay string `toml:"debounce_delay"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.beacon/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".beacon", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
// A relative bundle_dir is resolved against the config file's directory
// when baseDir is not empty.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool, baseDir string) error {
	s := newConfigSetter(changed)

	if fc.BundleDir != "" && baseDir != "" && !filepath.IsAbs(fc.BundleDir) {
		fc.BundleDir = filepath.Join(baseDir, fc.BundleDir)
	}

	s.setString("destination", fc.Destination, &cfg.Destination)
	s.setString("bundle-dir", fc.BundleDir, &cfg.BundleDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)

	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("debounce", fc.DebounceDelay, &cfg.DebounceDelay); err != nil {
		return err
	}

	s.setBool("preview", fc.Preview, &cfg.Preview)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
