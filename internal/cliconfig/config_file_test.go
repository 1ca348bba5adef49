package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		baseDir    string
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				Destination:   "http://10.0.0.5:2000",
				BundleDir:     "/srv/bundle",
				HTTPTimeout:   "30s",
				LogLevel:      "warn",
				LogFormat:     "json",
				Preview:       &trueVal,
				DebounceDelay: "1s",
			},
			changed: map[string]bool{},
			expected: Config{
				Destination:   "http://10.0.0.5:2000",
				BundleDir:     "/srv/bundle",
				HTTPTimeout:   30 * time.Second,
				LogLevel:      "warn",
				LogFormat:     "json",
				Preview:       true,
				DebounceDelay: time.Second,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				Destination: "http://file.example",
				LogLevel:    "debug",
			},
			changed: map[string]bool{"destination": true},
			initial: Config{Destination: "http://flag.example"},
			expected: Config{
				Destination: "http://flag.example", // unchanged because flag was set
				LogLevel:    "debug",
			},
		},
		{
			name:       "relative bundle dir resolves against config dir",
			fileConfig: FileConfig{BundleDir: "bundle"},
			changed:    map[string]bool{},
			baseDir:    "/etc/beacon",
			expected:   Config{BundleDir: filepath.Join("/etc/beacon", "bundle")},
		},
		{
			name:       "empty values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{HTTPTimeout: "forever"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed, tt.baseDir)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
destination = "http://192.168.86.62:2000"
bundle_dir = "fixtures"
http_timeout = "15s"
log_level = "debug"
preview = true
debounce_delay = "200ms"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}
	if fc.Destination != "http://192.168.86.62:2000" {
		t.Errorf("Destination = %q", fc.Destination)
	}
	if fc.BundleDir != "fixtures" {
		t.Errorf("BundleDir = %q", fc.BundleDir)
	}
	if fc.HTTPTimeout != "15s" {
		t.Errorf("HTTPTimeout = %q", fc.HTTPTimeout)
	}
	if fc.Preview == nil || !*fc.Preview {
		t.Errorf("Preview = %v, want true", fc.Preview)
	}
	if fc.DebounceDelay != "200ms" {
		t.Errorf("DebounceDelay = %q", fc.DebounceDelay)
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("destination = [unterminated"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	p := DefaultConfigPath()
	if p == "" {
		t.Skip("no home directory")
	}
	if !strings.HasSuffix(p, filepath.Join(".beacon", "config.toml")) {
		t.Errorf("DefaultConfigPath() = %q", p)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Join(dir, "absent")) {
		t.Error("FileExists() = true for missing file")
	}
}
