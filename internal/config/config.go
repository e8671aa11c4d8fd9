// Package config loads server configuration. Precedence, lowest to
// highest: built-in defaults, the YAML config file, environment
// variables. Command-line flags are applied on top by the cmd layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultServerName = "torrow-mcp"
	DefaultHost       = "127.0.0.1"
	DefaultPort       = 3000
)

// Config holds everything the server needs to start.
type Config struct {
	// ServerName is the MCP server name announced to clients.
	ServerName string `yaml:"serverName"`

	// Token is the Torrow API token. Required in stdio mode; in HTTP
	// mode each session brings its own bearer token instead.
	Token string `yaml:"token"`

	// APIBase overrides the Torrow API base URL.
	APIBase string `yaml:"apiBase"`

	// Host and Port configure the HTTP transport.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// DangerouslyOmitAuth lets HTTP sessions without a bearer token
	// fall back to the configured Token. Development only.
	DangerouslyOmitAuth bool `yaml:"dangerouslyOmitAuth"`
}

// Load builds the configuration. path selects an explicit config file;
// when empty, the default location is tried and silently skipped if
// absent.
func Load(path string) (*Config, error) {
	cfg := &Config{
		ServerName: DefaultServerName,
		Host:       DefaultHost,
		Port:       DefaultPort,
	}

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}
	if path != "" {
		if err := loadFile(cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// defaultPath returns the conventional config file location, or "" when
// the user config dir cannot be determined.
func defaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "torrow-mcp", "config.yaml")
}

// loadFile merges a YAML file into cfg. A missing file is an error only
// when the user named it explicitly.
func loadFile(cfg *Config, path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TORROW_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("TORROW_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("MCP_SERVER_NAME"); v != "" {
		cfg.ServerName = v
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil && port > 0 {
			cfg.Port = port
		}
	}
	if v := os.Getenv("TORROW_DANGEROUSLY_OMIT_AUTH"); v == "1" || v == "true" {
		cfg.DangerouslyOmitAuth = true
	}
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
