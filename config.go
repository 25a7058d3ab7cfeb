package nexuslogger

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/lixenwraith/config"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Name  string `toml:"name"`  // Label attached to every entry; empty omits the name field
	Path  string `toml:"path"`  // Output file path; empty means console output
	Level int64  `toml:"level"` // Minimum severity, one of the Level constants

	// Output settings
	UnixTimestamp bool   `toml:"unix_timestamp"` // Epoch-seconds time field instead of local calendar
	ConsoleTarget string `toml:"console_target"` // "stdout" or "stderr" when Path is empty

	// Tunables
	ChannelCapacity int64 `toml:"channel_capacity"`  // Transport slots per sink
	BatchSize       int64 `toml:"batch_size"`        // Entries per hand-off batch
	FlushIntervalMs int64 `toml:"flush_interval_ms"` // Worker flush interval
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Name:  "",
	Path:  "",
	Level: int64(LevelInfo),

	UnixTimestamp: false,
	ConsoleTarget: "stdout",

	ChannelCapacity: defaultChannelCapacity,
	BatchSize:       defaultBatchSize,
	FlushIntervalMs: defaultFlushIntervalMs,
}

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// NewConfigFromFile loads configuration from a TOML file and returns a validated Config
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct("log.", *cfg); err != nil {
		return nil, fmt.Errorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	// Extract values into our Config struct
	if err := extractConfig(loader, "log.", cfg); err != nil {
		return nil, fmt.Errorf("failed to extract config values: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if !validLevel(c.Level) {
		return fmtErrorf("invalid level: %d (use trace, debug, info, warn, error constants)", c.Level)
	}

	if c.ConsoleTarget != "stdout" && c.ConsoleTarget != "stderr" {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.ChannelCapacity <= 0 {
		return fmtErrorf("channel_capacity must be positive: %d", c.ChannelCapacity)
	}

	if c.BatchSize <= 0 {
		return fmtErrorf("batch_size must be positive: %d", c.BatchSize)
	}

	if c.FlushIntervalMs <= 0 {
		return fmtErrorf("flush_interval_ms must be positive: %d", c.FlushIntervalMs)
	}

	return nil
}
