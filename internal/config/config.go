// Package config loads the server configuration from a YAML or JSON file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/harrylevesque/nfcnav/internal/utils"
)

// DefaultFiles are looked up when no config path is given.
var DefaultFiles = []string{"nfcnav.yaml", "nfcnav.yml", "config.json"}

// Config holds the server settings. A loaded Config is passed by value and
// not modified afterwards.
type Config struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" json:"addr"`
	// BasePath mounts every route under a prefix, e.g. "/app".
	BasePath string `yaml:"basePath" json:"basePath"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel" json:"logLevel"`
	// LogFile, when set, receives logs instead of stderr.
	LogFile string `yaml:"logFile" json:"logFile"`
	// ScanLogCapacity caps the number of scans kept for the home screen.
	ScanLogCapacity int `yaml:"scanLogCapacity" json:"scanLogCapacity"`
	// ScanLogFile persists the scan log; empty keeps it in memory.
	ScanLogFile string `yaml:"scanLogFile" json:"scanLogFile"`
}

// Default returns the settings used for anything the file leaves out.
func Default() Config {
	return Config{
		Addr:            ":8080",
		BasePath:        "/",
		LogLevel:        "info",
		ScanLogCapacity: 50,
	}
}

// Load reads path (or the first of DefaultFiles when path is empty), applies
// environment overrides and validates the result. A missing default file is
// not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = utils.FindConfigFile(DefaultFiles...)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML (JSON is valid YAML) over the values already in cfg.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("NFCNAV_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := lookup("NFCNAV_BASE_PATH"); ok {
		cfg.BasePath = v
	}
	if v, ok := lookup("NFCNAV_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("NFCNAV_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup("NFCNAV_SCANLOG_FILE"); ok {
		cfg.ScanLogFile = v
	}
	if v, ok := lookup("NFCNAV_SCANLOG_CAPACITY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NFCNAV_SCANLOG_CAPACITY: %w", err)
		}
		cfg.ScanLogCapacity = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr must not be empty")
	}
	if _, err := utils.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.ScanLogCapacity <= 0 {
		return fmt.Errorf("config: scanLogCapacity must be positive, got %d", c.ScanLogCapacity)
	}
	return nil
}
