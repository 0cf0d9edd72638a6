// Package config loads the process configuration from defaults, an
// optional TOML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	envConfigFile = "LANDING_CONFIG"
	envRoot       = "LANDING_ROOT"
	envHost       = "LANDING_HOST"
	envPort       = "PORT"
	envLogLevel   = "LANDING_LOG_LEVEL"
	envLogFormat  = "LANDING_LOG_FORMAT"

	defaultHost      = "0.0.0.0"
	defaultPort      = 3002
	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

type Config struct {
	Root      string            `toml:"root"`
	Host      string            `toml:"host"`
	Port      int               `toml:"port"`
	LogLevel  string            `toml:"log_level"`
	LogFormat string            `toml:"log_format"`
	MIMETypes map[string]string `toml:"mime_types"`
}

// Addr returns the host:port pair to listen on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Load reads ".env" from the working directory when present, then the
// file named by LANDING_CONFIG, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Root:      determineDefaultRoot(),
		Host:      defaultHost,
		Port:      defaultPort,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}

	if path, ok := lookupEnv(envConfigFile); ok {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// determineDefaultRoot serves the directory the binary was installed to.
func determineDefaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}

func loadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if root, ok := lookupEnv(envRoot); ok {
		cfg.Root = root
	}

	if host, ok := lookupEnv(envHost); ok {
		cfg.Host = host
	}

	if raw, ok := lookupEnv(envPort); ok {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", envPort, raw, err)
		}

		cfg.Port = port
	}

	if level, ok := lookupEnv(envLogLevel); ok {
		cfg.LogLevel = level
	}

	if format, ok := lookupEnv(envLogFormat); ok {
		cfg.LogFormat = format
	}

	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	absoluteRoot, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolve root %s: %w", c.Root, err)
	}

	info, err := os.Stat(absoluteRoot)
	if err != nil {
		return fmt.Errorf("root directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", absoluteRoot)
	}

	c.Root = absoluteRoot

	return nil
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}

	return strings.TrimSpace(value), true
}
