// Package config loads netacho settings from a YAML or JSON file, then
// applies environment overrides. Command-line flags are applied last by
// the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"netacho/internal/format"
	"netacho/internal/logging"
	"netacho/internal/store"
)

// DefaultDataDir is where documents live when nothing else is configured.
const DefaultDataDir = ".neta-cho"

// Config is the root configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" json:"store"`
	Wizard  WizardConfig  `yaml:"wizard" json:"wizard"`
	HTTP    HTTPConfig    `yaml:"http" json:"http"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Output  OutputConfig  `yaml:"output" json:"output"`
}

type StoreConfig struct {
	Backend     string `yaml:"backend" json:"backend"` // file | memory | sqlite | redis
	DataDir     string `yaml:"data_dir" json:"data_dir"`
	SQLitePath  string `yaml:"sqlite_path" json:"sqlite_path"`
	RedisAddr   string `yaml:"redis_addr" json:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix" json:"redis_prefix"`
}

type WizardConfig struct {
	// SessionKey selects the interactive wizard document.
	SessionKey string `yaml:"session_key" json:"session_key"`
}

type HTTPConfig struct {
	Addr         string        `yaml:"addr" json:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // text | json
}

type OutputConfig struct {
	// Table is the terminal table style for CLI listings: ascii | markdown.
	Table string `yaml:"table" json:"table"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Store:   StoreConfig{Backend: store.BackendFile, DataDir: DefaultDataDir},
		Wizard:  WizardConfig{SessionKey: "default"},
		HTTP:    HTTPConfig{Addr: ":8765", ReadTimeout: 10 * time.Second, WriteTimeout: 30 * time.Second},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Output:  OutputConfig{Table: "ascii"},
	}
}

// LoadFromPath reads a config file (YAML or JSON) over Default and applies
// environment overrides. An empty path yields Default plus overrides.
func LoadFromPath(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.ApplyEnv(os.LookupEnv)
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Load(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Load parses data over Default. ext is a format hint (".json", ".yaml");
// empty means detect from content.
func Load(data []byte, ext string) (*Config, error) {
	cfg := Default()
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from NETACHO_* variables and REDIS_ADDR.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("NETACHO_DATA_DIR", &c.Store.DataDir)
	set("NETACHO_STORE", &c.Store.Backend)
	set("NETACHO_SQLITE_PATH", &c.Store.SQLitePath)
	set("REDIS_ADDR", &c.Store.RedisAddr)
	set("NETACHO_WIZARD_KEY", &c.Wizard.SessionKey)
	set("NETACHO_HTTP_ADDR", &c.HTTP.Addr)
	set("NETACHO_LOG_LEVEL", &c.Logging.Level)
	set("NETACHO_LOG_FORMAT", &c.Logging.Format)
}

// Validate checks enumerations and required fields.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendFile, store.BackendMemory, store.BackendSQLite:
	case store.BackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis backend (or set REDIS_ADDR)")
		}
	default:
		return fmt.Errorf("store.backend %q is not one of file, memory, sqlite, redis", c.Store.Backend)
	}
	if c.Store.Backend == store.BackendFile && c.Store.DataDir == "" {
		return fmt.Errorf("store.data_dir is required for the file backend")
	}
	if c.Wizard.SessionKey == "" || strings.ContainsAny(c.Wizard.SessionKey, `/\.`) {
		return fmt.Errorf("wizard.session_key %q must be a plain name", c.Wizard.SessionKey)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format %q is not text or json", c.Logging.Format)
	}
	if _, err := format.ParseMode(c.Output.Table); err != nil {
		return err
	}
	return nil
}

// StoreOptions converts the store section for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     c.Store.Backend,
		Dir:         c.Store.DataDir,
		SQLitePath:  c.Store.SQLitePath,
		RedisAddr:   c.Store.RedisAddr,
		RedisPrefix: c.Store.RedisPrefix,
	}
}
