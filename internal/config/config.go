// Package config loads server configuration from a TOML file layered with
// environment variable overrides, following the same precedence rules
// throughout: environment variables > config file > defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the checklistmcp server.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Engine    EngineConfig    `toml:"engine"`
	Transport TransportConfig `toml:"transport"`
	Log       LogConfig       `toml:"log"`
}

// ServerConfig holds MCP server metadata reported during the initialize handshake.
type ServerConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// EngineConfig bounds the in-memory checklist engine's namespace, session,
// and work-info registries.
type EngineConfig struct {
	// MaxNamespaces bounds the number of non-default namespaces kept
	// resident at once; the "default" namespace is pinned and never counted
	// toward this limit.
	MaxNamespaces int `toml:"max_namespaces"`
	// MaxSessions bounds the number of sessions kept resident per namespace.
	MaxSessions int `toml:"max_sessions"`
}

// TransportConfig holds transport-related settings.
type TransportConfig struct {
	// Mode selects the transport: "stdio" (default) or "http".
	Mode string `toml:"mode"`
	// Port is the HTTP listen port (default: 8787). Only used when Mode is "http".
	Port string `toml:"port"`
	// Host is the HTTP listen address (default: "0.0.0.0"). Only used when Mode is "http".
	Host string `toml:"host"`
	// CORSOrigins is a comma-separated list of allowed CORS origins (default: "*").
	CORSOrigins string `toml:"cors_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (from --config flag)
//  2. CHECKLISTMCP_CONFIG environment variable
//  3. ./checklistmcp.toml (current directory)
//  4. ~/.config/checklistmcp/checklistmcp.toml (XDG-style)
//
// All fields are optional in the config file. Environment variables always
// override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Name:    "checklistmcp",
			Version: "0.1.0",
		},
		Engine: EngineConfig{
			MaxNamespaces: 32,
			MaxSessions:   100,
		},
		Transport: TransportConfig{
			Mode:        "stdio",
			Port:        "8787",
			Host:        "0.0.0.0",
			CORSOrigins: "*",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath determines which config file to use. Returns empty string
// if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if p := os.Getenv("CHECKLISTMCP_CONFIG"); p != "" {
		return p
	}

	if _, err := os.Stat("checklistmcp.toml"); err == nil {
		return "checklistmcp.toml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/checklistmcp/checklistmcp.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is non-empty.
func (c *Config) applyEnv() {
	envOverride("CHECKLISTMCP_TRANSPORT", &c.Transport.Mode)
	envOverride("CHECKLISTMCP_PORT", &c.Transport.Port)
	envOverride("CHECKLISTMCP_HOST", &c.Transport.Host)
	envOverride("CHECKLISTMCP_CORS_ORIGINS", &c.Transport.CORSOrigins)
	envOverride("CHECKLISTMCP_LOG_LEVEL", &c.Log.Level)

	if v := os.Getenv("CHECKLISTMCP_MAX_NAMESPACES"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			c.Engine.MaxNamespaces = n
		}
	}
	if v := os.Getenv("CHECKLISTMCP_MAX_SESSIONS"); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			c.Engine.MaxSessions = n
		}
	}
}

// Validate checks that configuration values are internally consistent.
func (c *Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode: %q (must be \"stdio\" or \"http\")", c.Transport.Mode)
	}

	if c.Engine.MaxNamespaces < 1 {
		return fmt.Errorf("engine.max_namespaces must be at least 1, got %d", c.Engine.MaxNamespaces)
	}
	if c.Engine.MaxSessions < 1 {
		return fmt.Errorf("engine.max_sessions must be at least 1, got %d", c.Engine.MaxSessions)
	}

	return nil
}

// envOverride sets *dst to the value of the named env var, if it is non-empty.
func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
