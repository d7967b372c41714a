// Package config resolves runtime settings from the environment, an optional
// .env file and command-line flags, in that order of precedence (flags win).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/hammamikhairi/souschef/internal/logger"
)

// Environment variables read by Load.
const (
	EnvDB             = "SOUSCHEF_DB"
	EnvLogLevel       = "SOUSCHEF_LOG_LEVEL"
	EnvLogFile        = "SOUSCHEF_LOG_FILE"
	EnvRecipes        = "SOUSCHEF_RECIPES"
	EnvKnowledge      = "SOUSCHEF_KNOWLEDGE"
	EnvTick           = "SOUSCHEF_TICK"
	EnvAlmostDone     = "SOUSCHEF_ALMOST_DONE"
	EnvNotifyCooldown = "SOUSCHEF_NOTIFY_COOLDOWN"
	EnvMaxEscalation  = "SOUSCHEF_MAX_ESCALATION"
)

// DefaultLogFile is where logs go unless told otherwise.
const DefaultLogFile = ".souschef/logs/souschef.log"

// Config holds every setting the binary needs.
type Config struct {
	DBPath        string
	LogLevel      string
	LogFile       string // "stderr" logs to the console
	RecipesFile   string // optional YAML recipes added to the built-ins
	KnowledgeFile string // optional YAML replacing the built-in knowledge base

	TickInterval        time.Duration
	AlmostDoneThreshold time.Duration
	NotifyCooldown      time.Duration
	MaxEscalation       int
}

// Default returns the built-in configuration. The database lives under the
// user's home directory, or the working directory when there is none.
func Default() Config {
	dbPath := filepath.Join(".souschef", "souschef.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".souschef", "souschef.db")
	}
	return Config{
		DBPath:              dbPath,
		LogLevel:            "normal",
		LogFile:             DefaultLogFile,
		TickInterval:        time.Second,
		AlmostDoneThreshold: 30 * time.Second,
		NotifyCooldown:      30 * time.Second,
		MaxEscalation:       3,
	}
}

// Load reads .env (a missing file is fine) and then the environment.
// Invalid values keep their defaults and come back as warnings.
func Load() (Config, []error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from defaults overridden by getenv.
func FromEnv(getenv func(string) string) (Config, []error) {
	cfg := Default()
	var warnings []error

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) {
		v := getenv(key)
		if v == "" {
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			warnings = append(warnings, fmt.Errorf("%s=%q is not a positive duration, using %s", key, v, *dst))
			return
		}
		*dst = d
	}

	str(EnvDB, &cfg.DBPath)
	str(EnvLogFile, &cfg.LogFile)
	str(EnvRecipes, &cfg.RecipesFile)
	str(EnvKnowledge, &cfg.KnowledgeFile)

	if v := getenv(EnvLogLevel); v != "" {
		if _, err := logger.ParseLevel(v); err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w, using %q", EnvLogLevel, err, cfg.LogLevel))
		} else {
			cfg.LogLevel = v
		}
	}

	dur(EnvTick, &cfg.TickInterval)
	dur(EnvAlmostDone, &cfg.AlmostDoneThreshold)
	dur(EnvNotifyCooldown, &cfg.NotifyCooldown)

	if v := getenv(EnvMaxEscalation); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxEscalation = n
		} else {
			warnings = append(warnings, fmt.Errorf("%s=%q is not a non-negative integer, using %d", EnvMaxEscalation, v, cfg.MaxEscalation))
		}
	}

	return cfg, warnings
}

// BindFlags registers flags that override the loaded values. Call it before
// the flag set is parsed.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.DBPath, "db", c.DBPath, "path to the session database (\":memory:\" for a throwaway session)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: off, normal or verbose")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "file to write logs to (\"stderr\" logs to the console)")
	fs.StringVar(&c.RecipesFile, "recipes", c.RecipesFile, "YAML file with extra recipes")
	fs.StringVar(&c.KnowledgeFile, "knowledge", c.KnowledgeFile, "YAML file replacing the built-in substitutions and techniques")
	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "how often timers are checked")
}

// Validate reports settings no component can run with.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("database path is empty"))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	}
	if c.MaxEscalation < 0 {
		errs = append(errs, fmt.Errorf("max escalation must not be negative, got %d", c.MaxEscalation))
	}
	return errors.Join(errs...)
}
