package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apper-canvas/taskflow/internal/model"
	"gopkg.in/yaml.v3"
)

// Backend names accepted in the backend setting
const (
	BackendMemory = "memory"
	BackendLocal  = "local"
	BackendAPI    = "api"
)

// Config holds user preferences
type Config struct {
	Backend      string `yaml:"backend" json:"backend"`               // memory, local or api
	APIURL       string `yaml:"api_url" json:"api_url"`               // Record API base URL
	APIProjectID string `yaml:"api_project_id" json:"api_project_id"` // X-Project-Id header
	APIKey       string `yaml:"api_key" json:"api_key"`               // X-Api-Key header
	DBPath       string `yaml:"db_path" json:"db_path"`               // SQLite file for the local backend

	DefaultCategory string `yaml:"default_category" json:"default_category"` // Category of new tasks
	DefaultPriority string `yaml:"default_priority" json:"default_priority"` // Priority of new tasks
	ConfirmDelete   bool   `yaml:"confirm_delete" json:"confirm_delete"`     // Require confirmation for delete

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns the taskflow home directory (~/.taskflow)
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskflow"), nil
}

// Path returns the config file path, TASKFLOW_CONFIG or ~/.taskflow/config.yaml
func Path() (string, error) {
	if p := os.Getenv("TASKFLOW_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dbPath, logPath := "", ""
	if dir, err := Dir(); err == nil {
		dbPath = filepath.Join(dir, "tasks.db")
		logPath = filepath.Join(dir, "logs", "taskflow.log")
	}

	return &Config{
		Backend:         BackendLocal,
		DBPath:          dbPath,
		DefaultCategory: "Work",
		DefaultPriority: string(model.PriorityMedium),
		ConfirmDelete:   true,
		LogLevel:        "INFO",
		LogFile:         logPath,
		LogConsole:      false,
	}
}

// applyEnv overrides settings from TASKFLOW_* environment variables
func (c *Config) applyEnv() {
	c.Backend = getEnv("TASKFLOW_BACKEND", c.Backend)
	c.APIURL = getEnv("TASKFLOW_API_URL", c.APIURL)
	c.APIProjectID = getEnv("TASKFLOW_API_PROJECT", c.APIProjectID)
	c.APIKey = getEnv("TASKFLOW_API_KEY", c.APIKey)
	c.DBPath = getEnv("TASKFLOW_DB", c.DBPath)
	c.LogLevel = getEnv("TASKFLOW_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("TASKFLOW_LOG_FILE", c.LogFile)
	if v := os.Getenv("TASKFLOW_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true" || v == "1"
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads the config file at Path, then applies environment overrides
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads config from path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile reads path over the defaults, without environment overrides
func readFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

// Keys lists the settings accepted by Set, in file order
func Keys() []string {
	return []string{
		"backend", "api_url", "api_project_id", "api_key", "db_path",
		"default_category", "default_priority", "confirm_delete",
		"log_level", "log_file", "log_console",
	}
}

// Set changes one setting by its YAML key
func (c *Config) Set(key, value string) error {
	switch key {
	case "backend":
		c.Backend = value
	case "api_url":
		c.APIURL = value
	case "api_project_id":
		c.APIProjectID = value
	case "api_key":
		c.APIKey = value
	case "db_path":
		c.DBPath = value
	case "default_category":
		c.DefaultCategory = value
	case "default_priority":
		c.DefaultPriority = value
	case "confirm_delete", "log_console":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: want true or false, got %q", key, value)
		}
		if key == "confirm_delete" {
			c.ConfirmDelete = b
		} else {
			c.LogConsole = b
		}
	case "log_level":
		c.LogLevel = strings.ToUpper(value)
	case "log_file":
		c.LogFile = value
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// SetValue updates one setting in the config file at Path. Environment
// overrides are not written back.
func SetValue(key, value string) (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	cfg, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Set(key, value); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the backend selection and defaults
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendMemory, BackendLocal:
	case BackendAPI:
		if c.APIURL == "" {
			return fmt.Errorf("backend %q requires api_url", BackendAPI)
		}
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendMemory, BackendLocal, BackendAPI)
	}
	if c.DefaultPriority != "" {
		p, err := model.ParsePriority(c.DefaultPriority)
		if err != nil {
			return fmt.Errorf("default_priority: %w", err)
		}
		c.DefaultPriority = string(p)
	}
	return nil
}

// Save saves config to Path
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
