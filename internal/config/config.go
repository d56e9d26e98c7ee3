// Package config loads and persists the ideastash configuration.
//
// Precedence: explicit flags > IDEASTASH_* environment variables (a local
// .env file is honored) > config file > defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete ideastash configuration
type Config struct {
	DataDir      string `json:"dataDir" mapstructure:"dataDir"`
	DatabaseFile string `json:"databaseFile" mapstructure:"databaseFile"`

	API     APIConfig     `json:"api" mapstructure:"api"`
	Capture CaptureConfig `json:"capture" mapstructure:"capture"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// APIConfig contains HTTP API configuration
type APIConfig struct {
	Addr           string   `json:"addr" mapstructure:"addr"`
	AllowedOrigins []string `json:"allowedOrigins" mapstructure:"allowedOrigins"`
}

// CaptureConfig contains clipboard capture configuration
type CaptureConfig struct {
	// DedupeWindow is the number of recent content hashes remembered for
	// consecutive-duplicate suppression.
	DedupeWindow int `json:"dedupeWindow" mapstructure:"dedupeWindow"`
	// DefaultColor is assigned to captures that land in no category.
	DefaultColor string `json:"defaultColor" mapstructure:"defaultColor"`
	// CategoryID routes captures into a category when non-zero.
	CategoryID int64 `json:"categoryId" mapstructure:"categoryId"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
	File   string `json:"file" mapstructure:"file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:      defaultDataDir(),
		DatabaseFile: "ideastash.db",
		API: APIConfig{
			Addr:           "127.0.0.1:7420",
			AllowedOrigins: []string{"http://localhost", "http://127.0.0.1"},
		},
		Capture: CaptureConfig{
			DedupeWindow: 64,
			DefaultColor: "#95A5A6",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration. path may be empty, in which case the file
// <dataDir>/config.json is used if present. A missing config file is not an
// error: defaults plus environment overrides apply.
func Load(path string) (*Config, error) {
	// A .env next to the working directory is a developer convenience;
	// absence is fine.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("IDEASTASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = filepath.Join(v.GetString("dataDir"), "config.json")
	}

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration as JSON, creating the data directory if
// needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = filepath.Join(c.DataDir, "config.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DatabasePath returns the absolute path of the SQLite database file.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.DatabaseFile) {
		return c.DatabaseFile
	}
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// EnsureDataDir creates the data directory if it does not exist.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("dataDir", def.DataDir)
	v.SetDefault("databaseFile", def.DatabaseFile)
	v.SetDefault("api.addr", def.API.Addr)
	v.SetDefault("api.allowedOrigins", def.API.AllowedOrigins)
	v.SetDefault("capture.dedupeWindow", def.Capture.DedupeWindow)
	v.SetDefault("capture.defaultColor", def.Capture.DefaultColor)
	v.SetDefault("capture.categoryId", def.Capture.CategoryID)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.file", def.Logging.File)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ideastash"
	}
	return filepath.Join(home, ".ideastash")
}
