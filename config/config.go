package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/adamwoolhether/fetchq/engine"
)

// Config carries the file-configurable engine settings. Zero values
// mean "use the engine default".
type Config struct {
	// UserAgent overrides the engine's client signature.
	UserAgent string `mapstructure:"user_agent"`

	// Timeout bounds each individual transfer.
	Timeout time.Duration `mapstructure:"timeout" validate:"min=0"`

	// IdlePollInterval bounds the worker's blocking task pull when no
	// transfers are in flight.
	IdlePollInterval time.Duration `mapstructure:"idle_poll_interval" validate:"min=0"`

	// ReadinessInterval bounds the worker's per-iteration readiness
	// wait while transfers are in flight.
	ReadinessInterval time.Duration `mapstructure:"readiness_interval" validate:"min=0"`

	// Throttle enables token-bucket pacing of outbound transfers.
	Throttle *Throttle `mapstructure:"throttle"`
}

// Throttle mirrors throttle.Config for file-based configuration.
type Throttle struct {
	RPS   int `mapstructure:"rps" validate:"gt=0"`
	Burst int `mapstructure:"burst" validate:"gt=0"`
}

// Load reads and validates the YAML config at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Options converts the config into engine options, emitting one only
// for each field that was actually set.
func (c *Config) Options() []engine.Option {
	var opts []engine.Option

	if c.UserAgent != "" {
		opts = append(opts, engine.WithUserAgent(c.UserAgent))
	}
	if c.Timeout > 0 {
		opts = append(opts, engine.WithTimeout(c.Timeout))
	}
	if c.IdlePollInterval > 0 {
		opts = append(opts, engine.WithIdlePollInterval(c.IdlePollInterval))
	}
	if c.ReadinessInterval > 0 {
		opts = append(opts, engine.WithReadinessInterval(c.ReadinessInterval))
	}
	if c.Throttle != nil {
		opts = append(opts, engine.WithThrottle(c.Throttle.RPS, c.Throttle.Burst))
	}

	return opts
}
