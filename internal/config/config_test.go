package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfacchin/crewrota/pkg/core/model"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:      "postgres://localhost:5432/crewrota",
		SnapshotKey:      "schedule",
		Region:           "lombardia",
		DebounceMillis:   1000,
		ToleranceSeconds: 5,
		Holidays: []HolidayEntry{
			{Name: "Patron Saint", Date: "2025-06-24", Regional: true},
			{Name: "St. Ambrose", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=7", Regional: true},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/crewrota",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/crewrota",
		Holidays: []HolidayEntry{
			{Name: "Broken", RRule: "INVALID_RRULE_SYNTAX"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_HolidayNeedsExactlyDateOrRRule(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/crewrota",
		Holidays: []HolidayEntry{
			{Name: "Neither"},
		},
	}
	assert.Error(t, Validate(cfg))

	cfg.Holidays = []HolidayEntry{
		{Name: "Both", Date: "2025-06-24", RRule: "FREQ=YEARLY;BYMONTH=6;BYMONTHDAY=24"},
	}
	assert.Error(t, Validate(cfg))
}

func TestValidate_InvalidDateFormat(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/crewrota",
		Holidays: []HolidayEntry{
			{Name: "Bad Date", Date: "24/06/2025"},
		},
	}

	assert.Error(t, Validate(cfg))
}

func TestLoadFromPath_ValidFile(t *testing.T) {
	content := `
databaseURL: postgres://localhost:5432/crewrota
region: lombardia
debounceMillis: 500
toleranceSeconds: 10
holidays:
  - name: Patron Saint
    date: "2025-06-24"
    regional: true
`
	path := filepath.Join(t.TempDir(), "crewrota.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost:5432/crewrota", cfg.DatabaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 10*time.Second, cfg.Tolerance())
	require.Len(t, cfg.Holidays, 1)
	assert.True(t, cfg.Holidays[0].Regional)
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crewrota.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databaseURL: [unclosed"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{DatabaseURL: "postgres://localhost:5432/crewrota"}

	assert.Equal(t, model.SnapshotKey, cfg.Key())
	assert.Zero(t, cfg.Debounce())
	assert.Zero(t, cfg.Tolerance())
}

func TestConfig_HolidayOverrides(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost:5432/crewrota",
		Holidays: []HolidayEntry{
			{Name: "Patron Saint", Date: "2025-06-24", Regional: true},
			{Name: "St. Ambrose", RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=7", Regional: true},
		},
	}

	overrides, rules, err := cfg.HolidayOverrides()
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	require.Len(t, rules, 1)
	assert.Equal(t, "Patron Saint", overrides[0].Name)
	assert.Equal(t, "2025-06-24", overrides[0].Date.String())
	assert.Equal(t, "St. Ambrose", rules[0].Name)
}
