package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	xdgAppName = "canvastasks"
	configFile = "config.json"
	envFile    = "canvas.env"

	DefaultTimezone    = "America/Denver"
	DefaultRecencyDays = 14
	DefaultStrategy    = "recreate"
)

type Config struct {
	// TaskList is the Google Tasks list title to sync into. Empty means the
	// user's default list.
	TaskList string `json:"tasklist"`
	// Timezone is the destination civil zone for reminders.
	Timezone string `json:"timezone"`
	// RecencyDays is the lookback window for the assignment filter.
	RecencyDays int `json:"recency_days"`
	// Strategy is the reconciliation strategy: "recreate" or "update".
	Strategy string `json:"strategy"`
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(&Config{}), nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return defaults(&cfg), nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

func defaults(cfg *Config) *Config {
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.RecencyDays <= 0 {
		cfg.RecencyDays = DefaultRecencyDays
	}
	if cfg.Strategy == "" {
		cfg.Strategy = DefaultStrategy
	}
	return cfg
}

// Canvas holds the source API credentials.
type Canvas struct {
	BaseURL string
	Token   string
}

// LoadCanvas reads CANVAS_BASE_URL and CANVAS_API_TOKEN. Values already in
// the process environment win; otherwise they are loaded from canvas.env in
// the app config directory.
func LoadCanvas() (*Canvas, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	envPath := filepath.Join(xdgHome, ".config", xdgAppName, envFile)
	if _, err := os.Stat(envPath); err == nil {
		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	creds := &Canvas{
		BaseURL: os.Getenv("CANVAS_BASE_URL"),
		Token:   os.Getenv("CANVAS_API_TOKEN"),
	}
	if creds.BaseURL == "" || creds.Token == "" {
		return nil, fmt.Errorf("CANVAS_BASE_URL and CANVAS_API_TOKEN must be set in the environment or in %s", envPath)
	}
	return creds, nil
}
