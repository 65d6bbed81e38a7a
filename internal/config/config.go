// Package config loads the run configuration from a yaml file, environment
// variables and flag overrides, with validated defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/EmmanuelLazard/IBM-ponder-this-2024-03/internal/search"
)

type SearchConfig struct {
	N          int64  `json:"n" yaml:"n" mapstructure:"n"`
	Strategy   string `json:"strategy" yaml:"strategy" mapstructure:"strategy"`
	Start      int64  `json:"start" yaml:"start" mapstructure:"start"`
	WindowSize int64  `json:"window_size" yaml:"window_size" mapstructure:"window_size"`
	Threads    int    `json:"threads" yaml:"threads" mapstructure:"threads"`
}

type OutputConfig struct {
	LogLevel   string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Verbose    bool   `json:"verbose" yaml:"verbose" mapstructure:"verbose"`
	Directory  string `json:"directory" yaml:"directory" mapstructure:"directory"`
	Prefix     string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`
	SaveReport bool   `json:"save_report" yaml:"save_report" mapstructure:"save_report"`
}

type LimitsConfig struct {
	MemoryLimitMB int64 `json:"memory_limit_mb" yaml:"memory_limit_mb" mapstructure:"memory_limit_mb"`
}

type Config struct {
	Search SearchConfig `json:"search" yaml:"search" mapstructure:"search"`
	Output OutputConfig `json:"output" yaml:"output" mapstructure:"output"`
	Limits LimitsConfig `json:"limits" yaml:"limits" mapstructure:"limits"`

	loadedFrom string
}

// setDefaults registers every key so a missing config file still yields a
// complete configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.strategy", string(search.StrategyBackward))
	v.SetDefault("search.start", 1)
	v.SetDefault("search.window_size", 10_000_000)
	v.SetDefault("search.threads", 1)

	v.SetDefault("output.log_level", "info")
	v.SetDefault("output.verbose", false)
	v.SetDefault("output.directory", ".")
	v.SetDefault("output.prefix", "primeseq")
	v.SetDefault("output.save_report", true)

	v.SetDefault("limits.memory_limit_mb", 0) // 0 = unlimited
}

// Load reads path if it exists and overlays defaults and PRIMESEQ_* env
// variables. A missing file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PRIMESEQ")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.loadedFrom = v.ConfigFileUsed()
	return &cfg, nil
}

// LoadedFrom returns the config file actually read, or "" for defaults.
func (c *Config) LoadedFrom() string { return c.loadedFrom }

// Validate checks everything that must hold before a search starts.
func (c *Config) Validate() error {
	if c.Search.N < 1 {
		return fmt.Errorf("n must be a positive integer, got %d", c.Search.N)
	}
	if s := search.Strategy(c.Search.Strategy); s != search.StrategyBackward && s != search.StrategyDirect {
		return fmt.Errorf("strategy must be %q or %q, got %q",
			search.StrategyBackward, search.StrategyDirect, c.Search.Strategy)
	}
	if c.Search.Threads < 1 || c.Search.Threads > search.MaxThreads {
		return fmt.Errorf("threads must be between 1 and %d, got %d", search.MaxThreads, c.Search.Threads)
	}
	if c.Search.WindowSize < 1 {
		return fmt.Errorf("window_size must be positive, got %d", c.Search.WindowSize)
	}
	if c.Limits.MemoryLimitMB < 0 {
		return fmt.Errorf("memory_limit_mb cannot be negative")
	}
	return nil
}

// MaxTableEntries converts the memory cap to window table entries
// (one byte per entry). 0 means unlimited.
func (c *Config) MaxTableEntries() int64 {
	return c.Limits.MemoryLimitMB * 1024 * 1024
}

// SaveDefault writes a commented default config file to path.
func SaveDefault(path string) error {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return err
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	header := "# primeseq configuration\n# Generated " + time.Now().Format("2006-01-02 15:04:05") + "\n\n"
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(header+string(data)), 0o644)
}
