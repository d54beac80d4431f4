package interpreter

import (
	"sort"
	"strings"
	"time"
)

// Config describes how to launch the interpreter.
type Config struct {
	Command        string            `mapstructure:"command"         yaml:"command"`
	Args           []string          `mapstructure:"args"            yaml:"args"`
	Dir            string            `mapstructure:"dir"             yaml:"dir,omitempty"`
	Env            map[string]string `mapstructure:"env"             yaml:"env,omitempty"`
	DefaultTimeout time.Duration     `mapstructure:"default_timeout" yaml:"default_timeout"`
	StartupTimeout time.Duration     `mapstructure:"startup_timeout" yaml:"startup_timeout"`
	StopGrace      time.Duration     `mapstructure:"stop_grace"      yaml:"stop_grace"`
}

// Defaults for a SikuliX IDE jar in the working directory.
const (
	DefaultCommand        = "java"
	DefaultJar            = "sikulixide.jar"
	DefaultRunTimeout     = 60 * time.Second
	DefaultStartupTimeout = 30 * time.Second
	DefaultStopGrace      = 5 * time.Second
)

// DefaultArgs starts SikuliX in interactive mode.
func DefaultArgs() []string {
	return []string{"-jar", DefaultJar, "-i"}
}

func (c Config) withDefaults() Config {
	if c.Command == "" {
		c.Command = DefaultCommand
		if len(c.Args) == 0 {
			c.Args = DefaultArgs()
		}
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = DefaultRunTimeout
	}
	if c.StartupTimeout == 0 {
		c.StartupTimeout = DefaultStartupTimeout
	}
	if c.StopGrace == 0 {
		c.StopGrace = DefaultStopGrace
	}
	return c
}

// envList renders Env sorted by name. Names are upper-cased because viper
// lower-cases map keys read from config files.
func (c Config) envList() []string {
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, strings.ToUpper(k)+"="+c.Env[k])
	}
	return env
}
