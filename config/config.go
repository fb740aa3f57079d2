// Package config implements the Ellex Configuration Surface (spec.md §6):
// a Config struct with defaults, loadable from an optional file and
// ELLEX_*-prefixed environment variables. It is grounded on the
// defaults+file+env loading pattern used by joestump-claude-ops,
// open-policy-agent-opa, and vippsas-sqlcode, all three of which use
// github.com/spf13/viper for exactly this shape of configuration.
package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/ellex-lang/ellex/safety"
)

// Config is the full Configuration Surface from spec.md §6.
type Config struct {
	ExecutionTimeoutMS int  `mapstructure:"execution_timeout_ms"`
	MemoryLimitMB      int  `mapstructure:"memory_limit_mb"`
	MaxRecursionDepth  int  `mapstructure:"max_recursion_depth"`
	MaxLoopIterations  int  `mapstructure:"max_loop_iterations"`
	EnableTurtle       bool `mapstructure:"enable_turtle"`
	EnableAI           bool `mapstructure:"enable_ai"` // external collaborator flag; the core ignores it (spec.md §6)
}

// Default returns the spec.md §4.3/§6 defaults.
func Default() Config {
	lim := safety.DefaultLimits()
	return Config{
		ExecutionTimeoutMS: lim.ExecutionTimeoutMS,
		MemoryLimitMB:      lim.MemoryLimitMB,
		MaxRecursionDepth:  lim.MaxRecursionDepth,
		MaxLoopIterations:  lim.MaxLoopIterations,
		EnableTurtle:       true,
		EnableAI:           false,
	}
}

// Limits extracts the safety.Limits view of c.
func (c Config) Limits() safety.Limits {
	return safety.Limits{
		ExecutionTimeoutMS: c.ExecutionTimeoutMS,
		MemoryLimitMB:      c.MemoryLimitMB,
		MaxRecursionDepth:  c.MaxRecursionDepth,
		MaxLoopIterations:  c.MaxLoopIterations,
	}
}

// Load reads defaults, then an optional config file at path (if non-empty
// and present), then ELLEX_*-prefixed environment variable overrides, and
// returns an immutable snapshot. Thresholds are fixed for the lifetime of
// the returned Config — reload by calling Load again (spec.md §9: "no
// mid-evaluation config mutation").
func Load(path string) (Config, error) {
	v := viper.New()
	d := Default()
	v.SetDefault("execution_timeout_ms", d.ExecutionTimeoutMS)
	v.SetDefault("memory_limit_mb", d.MemoryLimitMB)
	v.SetDefault("max_recursion_depth", d.MaxRecursionDepth)
	v.SetDefault("max_loop_iterations", d.MaxLoopIterations)
	v.SetDefault("enable_turtle", d.EnableTurtle)
	v.SetDefault("enable_ai", d.EnableAI)

	v.SetEnvPrefix("ellex")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Set applies a single /set-style override of a recognized config key and
// reports whether name was recognized. Integer settings accept only a
// non-negative decimal integer and are left unchanged otherwise; boolean
// settings become true only for the value "true". It is used by the REPL's
// /set slash command for config-shaped names; ordinary variables go through
// eval.Session.Bind instead.
func (c *Config) Set(name, value string) bool {
	switch strings.ToLower(name) {
	case "execution_timeout_ms":
		setInt(&c.ExecutionTimeoutMS, value)
	case "memory_limit_mb":
		setInt(&c.MemoryLimitMB, value)
	case "max_recursion_depth":
		setInt(&c.MaxRecursionDepth, value)
	case "max_loop_iterations":
		setInt(&c.MaxLoopIterations, value)
	case "enable_turtle":
		c.EnableTurtle = value == "true"
	case "enable_ai":
		c.EnableAI = value == "true"
	default:
		return false
	}
	return true
}

func setInt(dst *int, value string) {
	n := 0
	for _, r := range value {
		if r < '0' || r > '9' {
			return
		}
		n = n*10 + int(r-'0')
	}
	*dst = n
}
