// Package config provides Viper-based configuration loading for the battle simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// BattleConfig holds squad composition and battle driving settings.
type BattleConfig struct {
	// Seed selects a reproducible random source; 0 uses crypto/rand.
	Seed int64 `mapstructure:"seed"`
	// SquadSizeMin and SquadSizeMax bound the inclusive squad size range.
	SquadSizeMin int `mapstructure:"squad_size_min"`
	SquadSizeMax int `mapstructure:"squad_size_max"`
	// Quotas of special roles per squad; the remainder are soldiers.
	Medics     int `mapstructure:"medics"`
	Grenadiers int `mapstructure:"grenadiers"`
	Snipers    int `mapstructure:"snipers"`
	Gunners    int `mapstructure:"gunners"`
	// RolesFile is an optional YAML file of role stat tables; empty uses the
	// built-in tables.
	RolesFile string `mapstructure:"roles_file"`
	// TimeLimit bounds a single battle's wall-clock time; 0 disables the limit.
	TimeLimit time.Duration `mapstructure:"time_limit"`
}

// Specialists returns the total number of non-soldier members per squad.
//
// Postcondition: Returns Medics + Grenadiers + Snipers + Gunners.
func (b BattleConfig) Specialists() int {
	return b.Medics + b.Grenadiers + b.Snipers + b.Gunners
}

// Validate checks the squad size range, role quotas and time limit.
//
// Postcondition: Returns nil if b is valid, or an error describing all violations.
func (b BattleConfig) Validate() error {
	return validateBattle(b)
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Battle  BattleConfig  `mapstructure:"battle"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.SquadSizeMin < 0 {
		errs = append(errs, fmt.Sprintf("battle.squad_size_min must be >= 0, got %d", b.SquadSizeMin))
	}
	if b.SquadSizeMax < b.SquadSizeMin {
		errs = append(errs, fmt.Sprintf("battle.squad_size_max (%d) must not be less than battle.squad_size_min (%d)", b.SquadSizeMax, b.SquadSizeMin))
	}
	quotas := []struct {
		key string
		n   int
	}{
		{"medics", b.Medics},
		{"grenadiers", b.Grenadiers},
		{"snipers", b.Snipers},
		{"gunners", b.Gunners},
	}
	for _, q := range quotas {
		if q.n < 0 {
			errs = append(errs, fmt.Sprintf("battle.%s must be >= 0, got %d", q.key, q.n))
		}
	}
	if b.Specialists() > b.SquadSizeMax {
		errs = append(errs, fmt.Sprintf("battle role quotas (%d) exceed battle.squad_size_max (%d)", b.Specialists(), b.SquadSizeMax))
	}
	if b.TimeLimit < 0 {
		errs = append(errs, "battle.time_limit must not be negative")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SQUADWAR_ prefix
	v.SetEnvPrefix("SQUADWAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// Default returns the built-in configuration without consulting files or the
// environment.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	v := viper.New()
	setDefaults(v)
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Warn keeps stdout to the single outcome line.
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("battle.seed", 0)
	v.SetDefault("battle.squad_size_min", 25)
	v.SetDefault("battle.squad_size_max", 30)
	v.SetDefault("battle.medics", 5)
	v.SetDefault("battle.grenadiers", 5)
	v.SetDefault("battle.snipers", 2)
	v.SetDefault("battle.gunners", 2)
	v.SetDefault("battle.roles_file", "")
	v.SetDefault("battle.time_limit", "1m")
}
