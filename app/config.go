package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"autoglm-helper/app/executor"
	"autoglm-helper/app/services"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	ServerPort     string   `yaml:"server_port"`
	ServerHost     string   `yaml:"server_host"`
	DataDir        string   `yaml:"data_dir"`
	DBDriver       string   `yaml:"db_driver"`
	DBPath         string   `yaml:"db_path"`
	DatabaseURL    string   `yaml:"database_url"`
	PrefsPath      string   `yaml:"prefs_path"`
	AutomationMode string   `yaml:"automation_mode"`
	ADBPath        string   `yaml:"adb_path"`
	ADBSerial      string   `yaml:"adb_serial"`
	CORSOrigins    []string `yaml:"cors_origins"`

	AutomationTimeoutMs int           `yaml:"automation_timeout_ms"`
	AutomationTimeout   time.Duration `yaml:"-"`
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig loads configuration from defaults, the optional YAML file
// named by CONFIG_FILE, and environment variables, in that order
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:          "8080",
		AutomationMode:      string(executor.ModeShell),
		ADBPath:             "adb",
		DBDriver:            services.DriverSQLite,
		AutomationTimeoutMs: 5000,
		CORSOrigins:         []string{"http://localhost", "http://127.0.0.1"},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadConfigFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.ServerHost = getEnv("SERVER_HOST", cfg.ServerHost)
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.PrefsPath = getEnv("PREFS_PATH", cfg.PrefsPath)
	cfg.AutomationMode = getEnv("AUTOMATION_MODE", cfg.AutomationMode)
	cfg.ADBPath = getEnv("ADB_PATH", cfg.ADBPath)
	cfg.ADBSerial = getEnv("ADB_SERIAL", cfg.ADBSerial)
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}
	if raw := getEnv("AUTOMATION_TIMEOUT_MS", ""); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTOMATION_TIMEOUT_MS %q: %w", raw, err)
		}
		cfg.AutomationTimeoutMs = ms
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".autoglm-helper")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "commands.db")
	}
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = filepath.Join(cfg.DataDir, "prefs.yaml")
	}
	cfg.AutomationTimeout = time.Duration(cfg.AutomationTimeoutMs) * time.Millisecond

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StoreDSN returns the connection target for the configured driver
func (c *Config) StoreDSN() string {
	if c.DBDriver == services.DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

func (c *Config) validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q", c.ServerPort)
	}
	switch c.DBDriver {
	case services.DriverSQLite:
	case services.DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when DB_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if _, err := executor.ParseMode(c.AutomationMode); err != nil {
		return err
	}
	if c.AutomationTimeoutMs <= 0 {
		return fmt.Errorf("AUTOMATION_TIMEOUT_MS must be positive, got %d", c.AutomationTimeoutMs)
	}
	return nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
