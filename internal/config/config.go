// Package config loads the YAML configuration shared by the ndgpemu command
// and its HTTP server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ndgpemu/ndgpemu/artifact"
	"github.com/ndgpemu/ndgpemu/params"
	"github.com/ndgpemu/ndgpemu/spline"
)

type ArtifactsConfig struct {
	Dir   string         `yaml:"dir"`
	Files artifact.Files `yaml:"files"`
}

type PredictConfig struct {
	RangePolicy   string `yaml:"range_policy"`
	Extrapolation string `yaml:"extrapolation"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CORSOrigins     []string      `yaml:"cors_origins,omitempty"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Predict   PredictConfig   `yaml:"predict"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Artifacts: ArtifactsConfig{
			Dir:   "artifacts",
			Files: artifact.DefaultFiles(),
		},
		Predict: PredictConfig{
			RangePolicy:   params.PolicyStrict.String(),
			Extrapolation: spline.Default.String(),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the configuration at path on top of the defaults. An empty
// path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.RangePolicy(); err != nil {
		return err
	}
	if _, err := c.Extrapolation(); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes must not be negative")
	}

	return nil
}

// RangePolicy parses predict.range_policy.
func (c *Config) RangePolicy() (params.Policy, error) {
	policy, ok := params.ParsePolicy(c.Predict.RangePolicy)
	if !ok {
		return policy, fmt.Errorf("predict.range_policy: unknown policy %q", c.Predict.RangePolicy)
	}

	return policy, nil
}

// Extrapolation parses predict.extrapolation.
func (c *Config) Extrapolation() (spline.Extrapolation, error) {
	ext, err := spline.ParseExtrapolation(c.Predict.Extrapolation)
	if err != nil {
		return ext, fmt.Errorf("predict.extrapolation: %w", err)
	}

	return ext, nil
}

// LoadOptions returns the artifact load options for the configured file names.
func (c *Config) LoadOptions() []artifact.LoadOption {
	return []artifact.LoadOption{artifact.WithFiles(c.Artifacts.Files)}
}
