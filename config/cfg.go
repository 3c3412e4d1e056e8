package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	FormatterConfig struct {
		DefaultUnit string `yaml:"default_unit" validate:"omitempty,alpha|eq=%"`
		Strict      bool   `yaml:"strict"`
	}

	FetchConfig struct {
		Timeout         time.Duration `yaml:"timeout"`
		DefaultMimeType string        `yaml:"default_mime_type" validate:"required,contains=/"`
		UserAgent       string        `yaml:"user_agent"`
		MaxBodySize     int64         `yaml:"max_body_size" validate:"gte=0"`
		SniffType       bool          `yaml:"sniff_type"`
		SlugNames       bool          `yaml:"slug_names"`
	}

	DecodeConfig struct {
		Timeout    time.Duration `yaml:"timeout"`
		FullDecode bool          `yaml:"full_decode"`
		AutoOrient bool          `yaml:"auto_orient"`
		Workers    int           `yaml:"workers" validate:"min=1,max=64"`
	}

	RegistryConfig struct {
		Origin string `yaml:"origin" validate:"required"`
	}

	MediaConfig struct {
		Fetch    FetchConfig    `yaml:"fetch"`
		Decode   DecodeConfig   `yaml:"decode"`
		Registry RegistryConfig `yaml:"registry"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Formatter FormatterConfig `yaml:"formatter"`
		Media     MediaConfig     `yaml:"media"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
