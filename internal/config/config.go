package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/sikuli-cli/internal/interpreter"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SIKULI_CLI_LOGGER_LEVEL.
const EnvPrefix = "SIKULI_CLI"

// Config holds the whole application configuration.
type Config struct {
	Interpreter interpreter.Config `mapstructure:"interpreter" yaml:"interpreter"`
	Session     SessionConfig      `mapstructure:"session"     yaml:"session"`
	Logger      LoggerConfig       `mapstructure:"logger"      yaml:"logger"`
	Metrics     MetricsConfig      `mapstructure:"metrics"     yaml:"metrics"`
}

// SessionConfig tunes protocol behaviour.
type SessionConfig struct {
	// StrictPresence turns a presence response without any return marker
	// into an error instead of false.
	StrictPresence bool `mapstructure:"strict_presence" yaml:"strict_presence"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level      string `mapstructure:"level"       yaml:"level"`
	Format     string `mapstructure:"format"      yaml:"format"` // console or json
	File       string `mapstructure:"file"        yaml:"file,omitempty"`
	MaxSize    int    `mapstructure:"max_size"    yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"     yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress"    yaml:"compress"`
}

// MetricsConfig configures the optional metrics listener of serve.
type MetricsConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr,omitempty"`
}

// SetDefaults registers a default for every key so env overrides work
// without a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("interpreter.command", interpreter.DefaultCommand)
	v.SetDefault("interpreter.args", interpreter.DefaultArgs())
	v.SetDefault("interpreter.dir", "")
	v.SetDefault("interpreter.env", map[string]string{})
	v.SetDefault("interpreter.default_timeout", interpreter.DefaultRunTimeout)
	v.SetDefault("interpreter.startup_timeout", interpreter.DefaultStartupTimeout)
	v.SetDefault("interpreter.stop_grace", interpreter.DefaultStopGrace)

	v.SetDefault("session.strict_presence", false)

	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	v.SetDefault("metrics.addr", "")
}

// Load reads the config file (explicit path, or sikuli-cli.yaml in the
// working directory or ~/.config/sikuli-cli), applies env overrides and
// returns the validated result. A missing default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sikuli-cli")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sikuli-cli")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logger.format %q (use console or json)", c.Logger.Format)
	}
	if c.Interpreter.Command == "" {
		return fmt.Errorf("interpreter.command must not be empty")
	}
	durations := map[string]time.Duration{
		"interpreter.default_timeout": c.Interpreter.DefaultTimeout,
		"interpreter.startup_timeout": c.Interpreter.StartupTimeout,
		"interpreter.stop_grace":      c.Interpreter.StopGrace,
	}
	for key, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %s", key, d)
		}
	}
	return nil
}
