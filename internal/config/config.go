package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"writeoff_monitor/internal/filter"
	"writeoff_monitor/internal/logger"

	"github.com/spf13/viper"
)

// Checked-flag policies for record extraction.
const (
	PolicyExcludeChecked = "exclude_checked"
	PolicyIgnoreChecked  = "ignore_checked"
)

// Dispatch sink kinds.
const (
	DispatchNone  = "none"
	DispatchHTTP  = "http"
	DispatchKafka = "kafka"
)

const envPrefix = "WRITEOFF"

// ColorSpec maps an event type to a cell background colour.
type ColorSpec struct {
	EventType string `mapstructure:"event_type"`
	Color     string `mapstructure:"color"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Dispatch struct {
	Kind    string        `mapstructure:"kind"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Kafka   Kafka         `mapstructure:"kafka"`
}

type Engine struct {
	Schedule      string `mapstructure:"schedule"`
	CheckedPolicy string `mapstructure:"checked_policy"`
	FirstRow      int    `mapstructure:"first_row"`
}

type Auth struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// Config is the effective application configuration.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	OffsetHours  float64
	Engine       Engine
	Filters      []filter.Spec
	Colors       []ColorSpec
	Dispatch     Dispatch
	PaintEnabled bool
	Auth         Auth
	GridImport   string
}

var errNoFilters = errors.New("at least one filter is required")

// Offset returns the fixed clock shift.
func (c *Config) Offset() time.Duration {
	return time.Duration(c.OffsetHours * float64(time.Hour))
}

// setDefaults registers every default on v, including the filter and colour tables.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("clock.offset_hours", 3)

	v.SetDefault("engine.schedule", "@every 1m")
	v.SetDefault("engine.checked_policy", PolicyExcludeChecked)
	v.SetDefault("engine.first_row", 2)

	v.SetDefault("filters", []map[string]any{
		{"kind": "periodic", "event_type": filter.EventAlreadyExpired, "interval_seconds": 600, "deviation_seconds": 30},
		{"kind": "range", "event_type": filter.EventExpireAt5Minutes, "low_seconds": 270, "high_seconds": 330},
		{"kind": "range", "event_type": filter.EventExpireAt10Minutes, "low_seconds": 570, "high_seconds": 630},
		{"kind": "range", "event_type": filter.EventExpireAt15Minutes, "low_seconds": 870, "high_seconds": 930},
	})
	v.SetDefault("colors", []map[string]any{
		{"event_type": filter.EventAlreadyExpired, "color": "#ea4335"},
		{"event_type": filter.EventExpireAt5Minutes, "color": "#ff9900"},
		{"event_type": filter.EventExpireAt10Minutes, "color": "#fbbc04"},
		{"event_type": filter.EventExpireAt15Minutes, "color": "#34a853"},
	})

	v.SetDefault("dispatch.kind", DispatchNone)
	v.SetDefault("dispatch.timeout", 10*time.Second)
	v.SetDefault("paint.enabled", true)

	v.SetDefault("auth.token_ttl", time.Hour)
}

// Load reads configs/config.yml (or the file at path when non-empty),
// applies WRITEOFF_* environment overrides and validates the result.
// A missing config file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:         v.GetString("port"),
		LogLevel:     v.GetString("log.level"),
		DBPath:       v.GetString("db.path"),
		OffsetHours:  v.GetFloat64("clock.offset_hours"),
		PaintEnabled: v.GetBool("paint.enabled"),
		GridImport:   v.GetString("grids.import"),
	}
	if err := v.UnmarshalKey("engine", &cfg.Engine); err != nil {
		return nil, fmt.Errorf("decode engine: %w", err)
	}
	if err := v.UnmarshalKey("filters", &cfg.Filters); err != nil {
		return nil, fmt.Errorf("decode filters: %w", err)
	}
	if err := v.UnmarshalKey("colors", &cfg.Colors); err != nil {
		return nil, fmt.Errorf("decode colors: %w", err)
	}
	if err := v.UnmarshalKey("dispatch", &cfg.Dispatch); err != nil {
		return nil, fmt.Errorf("decode dispatch: %w", err)
	}
	if err := v.UnmarshalKey("auth", &cfg.Auth); err != nil {
		return nil, fmt.Errorf("decode auth: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes enumerations and rejects unusable tables.
func (c *Config) Validate() error {
	if len(c.Filters) == 0 {
		return errNoFilters
	}
	if err := filter.ValidateAll(c.Filters); err != nil {
		return err
	}

	level, ok := logger.NormalizeLevel(c.LogLevel)
	if !ok && level != "" {
		return fmt.Errorf("log.level: unknown value %q", c.LogLevel)
	}
	c.LogLevel = level

	c.Engine.CheckedPolicy = strings.ToLower(strings.TrimSpace(c.Engine.CheckedPolicy))
	switch c.Engine.CheckedPolicy {
	case PolicyExcludeChecked, PolicyIgnoreChecked:
	case "":
		c.Engine.CheckedPolicy = PolicyExcludeChecked
	default:
		return fmt.Errorf("engine.checked_policy: unknown value %q", c.Engine.CheckedPolicy)
	}
	if c.Engine.FirstRow < 1 {
		c.Engine.FirstRow = 2
	}

	c.Dispatch.Kind = strings.ToLower(strings.TrimSpace(c.Dispatch.Kind))
	switch c.Dispatch.Kind {
	case "", DispatchNone:
		c.Dispatch.Kind = DispatchNone
	case DispatchHTTP:
		if c.Dispatch.URL == "" {
			return errors.New("dispatch.url is required for http dispatch")
		}
	case DispatchKafka:
		if len(c.Dispatch.Kafka.Brokers) == 0 || c.Dispatch.Kafka.Topic == "" {
			return errors.New("dispatch.kafka.brokers and dispatch.kafka.topic are required for kafka dispatch")
		}
	default:
		return fmt.Errorf("dispatch.kind: unknown value %q", c.Dispatch.Kind)
	}
	return nil
}
