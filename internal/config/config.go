// Package config loads runtime settings from the environment, an optional
// .env file and an optional YAML file of engine tunables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/feedback-engine/internal/engine"
)

// Environment variables read by Load.
const (
	EnvDB          = "FEEDBACK_DB"
	EnvTZ          = "FEEDBACK_TZ"
	EnvLogLevel    = "FEEDBACK_LOG_LEVEL"
	EnvLogFormat   = "FEEDBACK_LOG_FORMAT"
	EnvSchedule    = "FEEDBACK_SCHEDULE"
	EnvEvalTimeout = "FEEDBACK_EVAL_TIMEOUT"
	EnvMessageTTL  = "FEEDBACK_MESSAGE_TTL"
	EnvConfig      = "FEEDBACK_CONFIG"
)

// DefaultSchedule runs the end-of-day evaluation at 21:00.
const DefaultSchedule = "0 21 * * *"

// Config is the resolved runtime configuration.
type Config struct {
	DBPath      string
	Location    *time.Location
	LogLevel    string
	LogFormat   string
	Schedule    string
	EvalTimeout time.Duration
	ConfigFile  string
	Engine      engine.Config
}

// Overrides come from command-line flags and win over the environment.
type Overrides struct {
	DBPath     string
	TZ         string
	ConfigFile string
}

// fileConfig is the YAML shape. Absent keys keep the defaults.
type fileConfig struct {
	MaxPerDay            *int           `yaml:"max_per_day"`
	MaxUrgentPerDay      *int           `yaml:"max_urgent_per_day"`
	DefaultCooldownHours *int           `yaml:"default_cooldown_hours"`
	WindowDays           *int           `yaml:"window_days"`
	MessageTTLHours      *int           `yaml:"message_ttl_hours"`
	CooldownOverrides    map[string]int `yaml:"cooldown_overrides"`
}

// Load resolves the configuration. A missing .env is not an error.
func Load(o Overrides) (*Config, error) {
	_ = godotenv.Load()

	c := &Config{
		DBPath:     first(o.DBPath, os.Getenv(EnvDB), defaultDBPath()),
		LogLevel:   getEnv(EnvLogLevel, "info"),
		LogFormat:  getEnv(EnvLogFormat, "json"),
		Schedule:   getEnv(EnvSchedule, DefaultSchedule),
		ConfigFile: first(o.ConfigFile, os.Getenv(EnvConfig)),
		Engine:     engine.DefaultConfig(),
	}

	loc, err := loadLocation(first(o.TZ, os.Getenv(EnvTZ)))
	if err != nil {
		return nil, err
	}
	c.Location = loc

	c.EvalTimeout, err = time.ParseDuration(getEnv(EnvEvalTimeout, "30s"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvEvalTimeout, err)
	}

	if v := os.Getenv(EnvMessageTTL); v != "" {
		ttl, err := ParseTTL(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvMessageTTL, err)
		}
		c.Engine.MessageTTL = ttl
	}

	if c.ConfigFile != "" {
		if err := c.applyFile(c.ConfigFile); err != nil {
			return nil, err
		}
	}

	if err := c.Engine.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return c, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	e := &c.Engine
	if fc.MaxPerDay != nil {
		e.MaxPerDay = *fc.MaxPerDay
	}
	if fc.MaxUrgentPerDay != nil {
		e.MaxUrgentPerDay = *fc.MaxUrgentPerDay
	}
	if fc.DefaultCooldownHours != nil {
		e.DefaultCooldown = time.Duration(*fc.DefaultCooldownHours) * time.Hour
	}
	if fc.WindowDays != nil {
		e.WindowDays = *fc.WindowDays
	}
	if fc.MessageTTLHours != nil {
		e.MessageTTL = time.Duration(*fc.MessageTTLHours) * time.Hour
	}
	if len(fc.CooldownOverrides) > 0 {
		e.CooldownOverrides = make(map[string]time.Duration, len(fc.CooldownOverrides))
		for id, h := range fc.CooldownOverrides {
			e.CooldownOverrides[id] = time.Duration(h) * time.Hour
		}
	}
	return nil
}

// Logger builds a zap logger writing to stderr.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	var zc zap.Config
	switch c.LogFormat {
	case "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("%s: unknown format %q (use json or console)", EnvLogFormat, c.LogFormat)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvTZ, err)
	}
	return loc, nil
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".feedback-engine", "feedback.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var ttlRegex = regexp.MustCompile(`^(\d+)([dhms])$`)

// ParseTTL parses a TTL string like "7d", "24h", "30m" into a time.Duration.
func ParseTTL(s string) (time.Duration, error) {
	m := ttlRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid format %q (use e.g. 7d, 24h, 30m, 60s)", s)
	}
	n, _ := strconv.Atoi(m[1])
	switch m[2] {
	case "d":
		return time.Duration(n) * 24 * time.Hour, nil
	case "h":
		return time.Duration(n) * time.Hour, nil
	case "m":
		return time.Duration(n) * time.Minute, nil
	case "s":
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("unknown unit %q", m[2])
}
