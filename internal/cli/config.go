// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/csrkit/csr"
	"github.com/katalvlaran/csrkit/tensor"
)

// ErrConfigFormat is returned for a config file whose extension is neither
// YAML nor TOML.
var ErrConfigFormat = errors.New("cli: unsupported config format")

// Config carries the sampling and build defaults shared by subcommands.
// Flags given on the command line override file values.
type Config struct {
	DType      string  `yaml:"dtype" toml:"dtype"`
	Seed       uint64  `yaml:"seed" toml:"seed"`
	Fanout     int     `yaml:"fanout" toml:"fanout"`
	Replace    bool    `yaml:"replace" toml:"replace"`
	Workers    int     `yaml:"workers" toml:"workers"`
	BlockRows  int     `yaml:"block_rows" toml:"block_rows"`
	Trials     int     `yaml:"trials" toml:"trials"`
	Redundancy float64 `yaml:"redundancy" toml:"redundancy"`
}

// defaultConfig mirrors the library defaults.
func defaultConfig() Config {
	return Config{
		DType:      tensor.Int64.String(),
		Seed:       1,
		Fanout:     10,
		Workers:    csr.DefaultWorkers,
		BlockRows:  csr.DefaultBlockRows,
		Trials:     3,
		Redundancy: csr.DefaultRedundancy,
	}
}

// loadConfig overlays the file at path onto the defaults. The format follows
// the extension: .yaml/.yml or .toml.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &cfg)
	case ".toml":
		err = toml.Unmarshal(raw, &cfg)
	default:
		return cfg, fmt.Errorf("%s: %w", path, ErrConfigFormat)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := tensor.ParseDType(c.DType); err != nil {
		return fmt.Errorf("config dtype: %w", err)
	}
	if c.Workers < 0 || c.BlockRows < 1 || c.Trials < 0 || c.Redundancy < 0 {
		return errors.New("config: workers >= 0, block_rows >= 1, trials >= 0 and redundancy >= 0 required")
	}

	return nil
}

// sampleOptions converts the config into library options.
func (c Config) sampleOptions() []csr.SampleOption {
	return []csr.SampleOption{csr.WithWorkers(c.Workers), csr.WithBlockRows(c.BlockRows)}
}
