package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/mfacchin/crewrota/pkg/core/holiday"
	"github.com/mfacchin/crewrota/pkg/core/model"
)

// HolidayEntry defines one extra holiday, either a fixed date or a recurring
// rule. Exactly one of Date and RRule must be set.
type HolidayEntry struct {
	Name     string `yaml:"name" validate:"required"`
	Date     string `yaml:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RRule    string `yaml:"rrule,omitempty"`
	Regional bool   `yaml:"regional,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	DatabaseURL      string         `yaml:"databaseURL" validate:"required"`
	SnapshotKey      string         `yaml:"snapshotKey,omitempty"`
	Region           string         `yaml:"region,omitempty"`
	DebounceMillis   int            `yaml:"debounceMillis,omitempty" validate:"omitempty,min=1"`
	ToleranceSeconds int            `yaml:"toleranceSeconds,omitempty" validate:"omitempty,min=1"`
	Holidays         []HolidayEntry `yaml:"holidays,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from crewrota.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the holiday entries and their
// rrule syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, entry := range cfg.Holidays {
		if (entry.Date == "") == (entry.RRule == "") {
			return fmt.Errorf("holidays[%d] %q: exactly one of date and rrule must be set", i, entry.Name)
		}
		if entry.RRule != "" {
			if _, err := rrule.StrToRRule(entry.RRule); err != nil {
				return fmt.Errorf("invalid rrule in holidays[%d]: %w", i, err)
			}
		}
	}

	return nil
}

// Key returns the snapshot key, defaulting to the fixed aggregate key.
func (c *Config) Key() string {
	if c.SnapshotKey != "" {
		return c.SnapshotKey
	}
	return model.SnapshotKey
}

// Debounce returns the write-coalescing window, zero meaning engine default.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// Tolerance returns the conflict tolerance, zero meaning engine default.
func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.ToleranceSeconds) * time.Second
}

// HolidayOverrides splits the configured holiday entries into fixed-date
// overrides and recurring rules.
func (c *Config) HolidayOverrides() ([]model.Holiday, []holiday.Rule, error) {
	var overrides []model.Holiday
	var rules []holiday.Rule
	for _, entry := range c.Holidays {
		if entry.RRule != "" {
			rules = append(rules, holiday.Rule{Name: entry.Name, RRule: entry.RRule, Regional: entry.Regional})
			continue
		}
		date, err := model.ParseDate(entry.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("holiday %q: %w", entry.Name, err)
		}
		overrides = append(overrides, model.Holiday{Date: date, Name: entry.Name, Regional: entry.Regional})
	}
	return overrides, rules, nil
}

// findConfigFile searches for crewrota.yaml in current directory and home directory.
func findConfigFile() (string, error) {
	configFileName := "crewrota.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
