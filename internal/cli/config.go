package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/kvsml"
	"github.com/arloliu/kvsml/digest"
	"github.com/arloliu/kvsml/format"
)

// Config is the optional YAML file read with --config. Flags given on the
// command line take precedence over it.
//
//	encoding: binary
//	compression: zstd
//	digest: blake3
//	log_level: debug
type Config struct {
	Encoding    string `yaml:"encoding"`
	Compression string `yaml:"compression"`
	Digest      string `yaml:"digest"`
	LogLevel    string `yaml:"log_level"`
}

// DefaultConfig matches the library defaults.
func DefaultConfig() Config {
	return Config{
		Encoding:    "inline",
		Compression: "none",
		Digest:      "xxhash",
		LogLevel:    "info",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every field names a known value.
func (c Config) Validate() error {
	if _, err := format.ParseEncoding(c.Encoding); err != nil {
		return err
	}
	if _, err := format.ParseCompressionType(c.Compression); err != nil {
		return err
	}
	if _, err := digest.ParseAlgorithm(c.Digest); err != nil {
		return err
	}
	if _, err := levelOption(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// WriterOptions converts the encoding settings to library options.
func (c Config) WriterOptions() ([]kvsml.WriterOption, error) {
	enc, err := format.ParseEncoding(c.Encoding)
	if err != nil {
		return nil, err
	}
	comp, err := format.ParseCompressionType(c.Compression)
	if err != nil {
		return nil, err
	}

	return []kvsml.WriterOption{kvsml.WithEncoding(enc), kvsml.WithCompression(comp)}, nil
}
