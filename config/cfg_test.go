package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rupor-github/gencfg"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
formatter:
  default_unit: rem
  strict: true
media:
  fetch:
    timeout: 5s
    default_mime_type: image/png
    max_body_size: 1048576
    sniff_type: true
  decode:
    timeout: 2s
    full_decode: false
    workers: 2
  registry:
    origin: http://localhost:8080
logging:
  console:
    level: debug
  file:
    level: none
reporting:
  destination: ` + filepath.Join(tmpDir, "report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Formatter.DefaultUnit != "rem" {
		t.Errorf("DefaultUnit = %q, want rem", cfg.Formatter.DefaultUnit)
	}
	if !cfg.Formatter.Strict {
		t.Error("Expected Strict to be true")
	}
	if cfg.Media.Fetch.Timeout != 5*time.Second {
		t.Errorf("Fetch.Timeout = %v, want 5s", cfg.Media.Fetch.Timeout)
	}
	if cfg.Media.Fetch.DefaultMimeType != "image/png" {
		t.Errorf("DefaultMimeType = %q, want image/png", cfg.Media.Fetch.DefaultMimeType)
	}
	if cfg.Media.Fetch.MaxBodySize != 1048576 {
		t.Errorf("MaxBodySize = %d, want 1048576", cfg.Media.Fetch.MaxBodySize)
	}
	if !cfg.Media.Fetch.SniffType {
		t.Error("Expected SniffType to be true")
	}
	if cfg.Media.Decode.Timeout != 2*time.Second {
		t.Errorf("Decode.Timeout = %v, want 2s", cfg.Media.Decode.Timeout)
	}
	if cfg.Media.Decode.FullDecode {
		t.Error("Expected FullDecode to be false")
	}
	if cfg.Media.Decode.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Media.Decode.Workers)
	}
	if cfg.Media.Registry.Origin != "http://localhost:8080" {
		t.Errorf("Origin = %q", cfg.Media.Registry.Origin)
	}
	// not mentioned in file - must come from template
	if !cfg.Media.Decode.AutoOrient {
		t.Error("Expected AutoOrient default to survive")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
formatter:
  default_unit: px
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad version", "version: 2\n"},
		{"no workers", "version: 1\nmedia:\n  decode:\n    workers: 0\n"},
		{"negative body size", "version: 1\nmedia:\n  fetch:\n    max_body_size: -1\n"},
		{"mime without slash", "version: 1\nmedia:\n  fetch:\n    default_mime_type: jpeg\n"},
		{"unit with spaces", "version: 1\nformatter:\n  default_unit: 'p x'\n"},
		{"bad console level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid_values.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_UnitlessDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "unitless.yaml")
	if err := os.WriteFile(configPath, []byte("version: 1\nformatter:\n  default_unit: ''\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Formatter.DefaultUnit != "" {
		t.Errorf("DefaultUnit = %q, want empty", cfg.Formatter.DefaultUnit)
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// template expressions must be gone
	if strings.Contains(string(data), "{{") {
		t.Error("Prepare() left unexpanded template expressions")
	}

	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Media.Fetch.Timeout = 90 * time.Second

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
	if cfg2.Media.Fetch.Timeout != cfg.Media.Fetch.Timeout {
		t.Errorf("Timeout mismatch after dump/load: got %v, want %v", cfg2.Media.Fetch.Timeout, cfg.Media.Fetch.Timeout)
	}
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Formatter.DefaultUnit != "px" {
		t.Errorf("DefaultUnit = %q, want px", cfg.Formatter.DefaultUnit)
	}
	if cfg.Media.Fetch.DefaultMimeType != "image/jpeg" {
		t.Errorf("DefaultMimeType = %q, want image/jpeg", cfg.Media.Fetch.DefaultMimeType)
	}
	if cfg.Media.Fetch.SniffType {
		t.Error("SniffType should be off by default")
	}
	if cfg.Media.Decode.Timeout != 0 {
		t.Errorf("Decode.Timeout = %v, want none", cfg.Media.Decode.Timeout)
	}
	if !cfg.Media.Decode.FullDecode {
		t.Error("FullDecode should be on by default")
	}
	if !strings.HasPrefix(cfg.Media.Fetch.UserAgent, "cssm (") {
		t.Errorf("UserAgent = %q, not expanded from template", cfg.Media.Fetch.UserAgent)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		data := []byte(`version: 1`)
		cfg := &Config{}

		result, err := unmarshalConfig(data, cfg, false)
		if err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}

		if result == nil {
			t.Fatal("unmarshalConfig() returned nil")
		}

		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		data := []byte(`invalid: [yaml`)
		cfg := &Config{}

		_, err := unmarshalConfig(data, cfg, false)
		if err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		data := []byte("version: 1\nmedia:\n  fetch:\n    timeout: forever\n")
		if _, err := unmarshalConfig(data, &Config{}, false); err == nil {
			t.Error("Expected error for malformed duration")
		}
	})
}
