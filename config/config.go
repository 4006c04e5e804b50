package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ConfigDebug          = "debug"
	ConfigOutputDir      = "output-dir"
	ConfigThreads        = "threads"
	ConfigNumGames       = "num-games"
	ConfigStrategy       = "strategy"
	ConfigStrategyScript = "strategy-script"
	ConfigSeedFile       = "seed-file"
	ConfigLogTurns       = "log-turns"
	ConfigHistogramBins  = "histogram-bins"
	ConfigCPUProfile     = "cpu-profile"
	ConfigMemProfile     = "mem-profile"
)

// Config wraps a viper instance. Settings come, in increasing priority,
// from defaults, a config.yaml file, and YAHTZEE_* environment variables.
type Config struct {
	viper.Viper
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigOutputDir, "./results")
	c.SetDefault(ConfigThreads, max(1, runtime.NumCPU()))
	c.SetDefault(ConfigNumGames, 1000)
	c.SetDefault(ConfigStrategy, "firstroll")
	c.SetDefault(ConfigStrategyScript, "")
	c.SetDefault(ConfigSeedFile, "")
	c.SetDefault(ConfigLogTurns, false)
	c.SetDefault(ConfigHistogramBins, 20)
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
}

// DefaultConfig returns a config with only default values, mostly for
// tests.
func DefaultConfig() Config {
	c := Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

// Load reads the config file, if any, and the environment.
func (c *Config) Load() error {
	c.Viper = *viper.New()
	c.setDefaults()

	c.SetEnvPrefix("yahtzee")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath("$HOME/.yahtzee")
	c.AddConfigPath(".")

	err := c.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		log.Debug().Msg("no-config-file")
	} else {
		log.Info().Str("file", c.ConfigFileUsed()).Msg("loaded-config-file")
	}
	return c.validate()
}

func (c *Config) validate() error {
	if c.GetInt(ConfigThreads) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigThreads)
	}
	if c.GetInt(ConfigNumGames) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigNumGames)
	}
	if c.GetInt(ConfigHistogramBins) < 1 {
		return fmt.Errorf("%s must be at least 1", ConfigHistogramBins)
	}
	return nil
}

// AdjustRelativePaths makes relative file settings relative to basepath,
// usually the directory of the executable.
func (c *Config) AdjustRelativePaths(basepath string) {
	for _, key := range []string{ConfigOutputDir, ConfigStrategyScript, ConfigSeedFile} {
		p := c.GetString(key)
		if p == "" || filepath.IsAbs(p) {
			continue
		}
		c.Set(key, filepath.Join(basepath, p))
	}
}

// SetChecked sets a known key and rolls the change back if the result
// does not validate.
func (c *Config) SetChecked(key string, value string) error {
	if !c.IsKnownKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	old := c.Get(key)
	c.Set(key, value)
	if err := c.validate(); err != nil {
		c.Set(key, old)
		return err
	}
	return nil
}

func (c *Config) IsKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func Keys() []string {
	return []string{
		ConfigDebug, ConfigOutputDir, ConfigThreads, ConfigNumGames,
		ConfigStrategy, ConfigStrategyScript, ConfigSeedFile, ConfigLogTurns,
		ConfigHistogramBins, ConfigCPUProfile, ConfigMemProfile,
	}
}

// SanitizedSettings is a printable view of the settings.
func (c *Config) SanitizedSettings() map[string]any {
	out := map[string]any{}
	for _, k := range Keys() {
		out[k] = c.Get(k)
	}
	return out
}

// Clone copies the current settings into an independent config, so one
// command can override settings without touching the shell's.
func (c *Config) Clone() *Config {
	out := DefaultConfig()
	for _, k := range Keys() {
		out.Set(k, c.Get(k))
	}
	return &out
}
