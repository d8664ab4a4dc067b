// Package config loads cipher parameters from JSON or YAML files. It is an
// external collaborator of the cipher engine: values are validated here and
// passed through to rijndael.New and friends, never reinterpreted by the
// core.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config holds the parameters a caller feeds the cipher engine.
type Config struct {
	// KeySize is the cipher key size in bits: 128, 192, or 256.
	KeySize int `json:"key_size" yaml:"key_size"`

	// Padding selects PKCS#7 padding for multi-block operation.
	Padding bool `json:"padding" yaml:"padding"`

	// Verbose enables debug logging in the tools that consume this
	// configuration. The cipher engine itself never logs.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// Default returns the default configuration: AES-128 with padding enabled.
func Default() Config {
	return Config{KeySize: 128, Padding: true}
}

// Validate checks that the configuration selects a supported cipher variant.
func (c Config) Validate() error {
	switch c.KeySize {
	case 128, 192, 256:
		return nil
	default:
		return fmt.Errorf("config: key size must be 128, 192, or 256 bits, got %d", c.KeySize)
	}
}

// Load reads a configuration file from the given filesystem, detecting the
// format from the file extension: .json, .yaml, or .yml. Fields absent from
// the file keep their defaults.
func Load(fsys afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: unsupported file format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
