package config

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/params"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrequency = 60
	DefaultDataDir   = ".pendsim"
	DefaultLogLevel  = "info"
)

type Config struct {
	Frequency float64            `yaml:"frequency"`
	DataDir   string             `yaml:"data_dir"`
	Plots     bool               `yaml:"plots"`
	Log       LogConfig          `yaml:"log"`
	Params    map[string]float64 `yaml:"params"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Frequency: DefaultFrequency,
		DataDir:   DefaultDataDir,
		Plots:     true,
		Log:       LogConfig{Level: DefaultLogLevel},
		Params:    params.Default().Map(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys missing from the file keep
// base's values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if cfg.Params == nil {
		cfg.Params = make(map[string]float64)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values that cannot drive a run. Parameter values outside
// their bounds are not errors; they are clamped when the store is built.
func (c *Config) Validate() error {
	if !(c.Frequency > 0) || math.IsInf(c.Frequency, 0) {
		return fmt.Errorf("%w: frequency must be positive and finite, got %v", dynamo.ErrInvalidConfig, c.Frequency)
	}
	for _, name := range c.paramNames() {
		if _, err := params.ParseID(name); err != nil {
			return fmt.Errorf("%w: %w", dynamo.ErrInvalidConfig, err)
		}
	}
	return nil
}

// Dt is the fixed timestep implied by Frequency.
func (c *Config) Dt() float64 {
	return 1.0 / c.Frequency
}

// Store builds a parameter store from the defaults overlaid with c.Params.
// Unknown names are skipped; Validate reports them.
func (c *Config) Store() *params.Store {
	v := params.Defaults()
	for name, val := range c.Params {
		id, err := params.ParseID(name)
		if err != nil {
			continue
		}
		v[id] = val
	}
	return params.New(v)
}

// SetParam overrides one parameter by name.
func (c *Config) SetParam(name string, value float64) error {
	id, err := params.ParseID(name)
	if err != nil {
		return err
	}
	if c.Params == nil {
		c.Params = make(map[string]float64)
	}
	c.Params[id.String()] = value
	return nil
}

func (c *Config) paramNames() []string {
	names := make([]string, 0, len(c.Params))
	for name := range c.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
