package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/ini.v1"
)

// Config holds all application configuration
type Config struct {
	// [database]
	DBDriver string
	DBDSN    string

	// [http]
	HTTPListen string

	// [export]
	ExportPath    string
	ExportFormat  string
	ReloadCommand string

	// [lease]
	UpdateOnMismatch bool

	// [log]
	LogLevel  string
	LogDebug  bool
	LogOutput string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		DBDriver:      "sqlite3",
		DBDSN:         "/var/lib/inventory/inventory.db",
		HTTPListen:    "0.0.0.0:8067",
		ExportPath:    "/etc/dnsmasq.d/inventory.conf",
		ExportFormat:  "dnsmasq",
		ReloadCommand: "sudo -n systemctl reload dnsmasq",
		LogLevel:      "info",
		LogOutput:     "stderr",
	}
}

// LoadFromFile loads configuration from an INI file. A missing file leaves
// the configuration unchanged.
func (c *Config) LoadFromFile(filename string) error {
	if filename == "" {
		return nil
	}
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, filename)
	if err != nil {
		return fmt.Errorf("load config %s: %w", filename, err)
	}

	db := cfg.Section("database")
	c.DBDriver = db.Key("driver").MustString(c.DBDriver)
	c.DBDSN = db.Key("dsn").MustString(c.DBDSN)

	c.HTTPListen = cfg.Section("http").Key("listen").MustString(c.HTTPListen)

	export := cfg.Section("export")
	c.ExportPath = export.Key("path").MustString(c.ExportPath)
	c.ExportFormat = export.Key("format").MustString(c.ExportFormat)
	c.ReloadCommand = export.Key("reload_command").MustString(c.ReloadCommand)

	c.UpdateOnMismatch = cfg.Section("lease").Key("update_on_mismatch").MustBool(c.UpdateOnMismatch)

	log := cfg.Section("log")
	c.LogLevel = log.Key("level").MustString(c.LogLevel)
	c.LogDebug = log.Key("debug").MustBool(c.LogDebug)
	c.LogOutput = log.Key("output").MustString(c.LogOutput)

	return nil
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("INVENTORY_DB"); v != "" {
		c.DBDSN = v
	}
	if v := os.Getenv("INVENTORY_DB_DRIVER"); v != "" {
		c.DBDriver = v
	}
	if v := os.Getenv("INVENTORY_HTTP_LISTEN"); v != "" {
		c.HTTPListen = v
	}
	if v := os.Getenv("INVENTORY_EXPORT_PATH"); v != "" {
		c.ExportPath = v
	}
	if v := os.Getenv("INVENTORY_RELOAD_COMMAND"); v != "" {
		c.ReloadCommand = v
	}
	if v := os.Getenv("INVENTORY_UPDATE_ON_MISMATCH"); v != "" {
		c.UpdateOnMismatch, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		c.LogDebug, _ = strconv.ParseBool(v)
	}
}

// Path picks the configuration file: the explicit flag value, then
// INVENTORY_CONFIG, then fallback.
func Path(flagValue, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv("INVENTORY_CONFIG"); v != "" {
		return v
	}
	return fallback
}

// Load creates a configuration from defaults, the file and the environment,
// in that order of increasing precedence.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.LoadFromFile(configFile); err != nil {
		return nil, err
	}

	cfg.LoadFromEnv()

	return cfg, nil
}
