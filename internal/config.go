package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Data   DataConfig        `yaml:"data"`
	Hours  HoursConfig       `yaml:"hours"`
	Places PlacesConfig      `yaml:"places"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Data.Validate(); err != nil {
		return err
	}
	if err := c.Hours.Validate(); err != nil {
		return err
	}
	return c.Places.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DataConfig locates the plaza data files.
type DataConfig struct {
	// Path is the data directory holding the JSON files.
	Path string `yaml:"path"`
	// PlazaFile is the consolidated plaza file, tried first.
	PlazaFile string `yaml:"plaza_file"`
	// IndexFile is the multi-file index, the fallback.
	IndexFile string `yaml:"index_file"`
	// BusinessDir holds per-business JSON files in multi-file mode.
	BusinessDir string `yaml:"business_dir"`
	// Watch enables reloading the data set when files change on disk.
	Watch bool `yaml:"watch"`
}

// Validate validates the data configuration.
func (c *DataConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.PlazaFile, validation.Required),
		validation.Field(&c.IndexFile, validation.Required),
		validation.Field(&c.BusinessDir, validation.Required),
	)
}

// HoursConfig controls the schedule evaluator.
type HoursConfig struct {
	// Timezone is the IANA zone all hours strings are written in.
	Timezone string `yaml:"timezone"`
	// StaleAfterHours is the age beyond which a last-refresh timestamp
	// counts as stale.
	StaleAfterHours int `yaml:"stale_after_hours"`
	// WrapOvernight opts into treating a close time earlier than the open
	// time as spanning midnight. Off by default; see the evaluator docs.
	WrapOvernight bool `yaml:"wrap_overnight"`
}

// Location resolves the configured time zone.
func (c *HoursConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// StaleAfter returns the staleness threshold as a duration.
func (c *HoursConfig) StaleAfter() time.Duration {
	return time.Duration(c.StaleAfterHours) * time.Hour
}

// Validate validates the hours configuration.
func (c *HoursConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Timezone, validation.Required),
		validation.Field(&c.StaleAfterHours, validation.Required, validation.Min(1)),
	); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("hours: unknown timezone %q", c.Timezone)
	}
	return nil
}

// PlacesConfig controls the live places API integration. An empty APIKey
// disables it; the static listing works without it.
type PlacesConfig struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// Enabled returns true when an API key is configured.
func (c *PlacesConfig) Enabled() bool {
	return c.APIKey != ""
}

// CacheTTL returns the details cache time-to-live.
func (c *PlacesConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Timeout returns the upstream request timeout.
func (c *PlacesConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate validates the places configuration.
func (c *PlacesConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.CacheTTLMinutes, validation.Required, validation.Min(1)),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Data: DataConfig{
			Path:        "./data",
			PlazaFile:   "plaza.json",
			IndexFile:   "index.json",
			BusinessDir: "businesses",
			Watch:       true,
		},
		Hours: HoursConfig{
			Timezone:        "America/New_York",
			StaleAfterHours: 48,
		},
		Places: PlacesConfig{
			BaseURL:         "https://maps.googleapis.com/maps/api/place",
			CacheTTLMinutes: 30,
			TimeoutSeconds:  10,
		},
	}
}
