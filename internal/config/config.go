// Package config loads the client configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	UI     UIConfig     `yaml:"ui"`
}

// ServerConfig describes the connection to the game server.
type ServerConfig struct {
	URL string `yaml:"url"`
	// ReconnectAttempts bounds the automatic reconnect loop.
	ReconnectAttempts int `yaml:"reconnect_attempts"`
	// ReconnectDelayMs is the fixed delay between attempts.
	ReconnectDelayMs int `yaml:"reconnect_delay_ms"`
	// SessionInvalidMarkers are server error substrings that mean the
	// game no longer exists.
	SessionInvalidMarkers []string `yaml:"session_invalid_markers"`
}

// UIConfig holds the fixed display windows for transient cues.
type UIConfig struct {
	ToastSeconds      float64 `yaml:"toast_seconds"`
	RecycleSeconds    float64 `yaml:"recycle_seconds"`
	CopiedSeconds     float64 `yaml:"copied_seconds"`
	AutoReturnSeconds float64 `yaml:"auto_return_seconds"`
}

// ReconnectDelay returns the delay between reconnect attempts.
func (c *ServerConfig) ReconnectDelay() time.Duration {
	return time.Duration(c.ReconnectDelayMs) * time.Millisecond
}

// ToastWindow returns how long a transient error stays visible.
func (c *UIConfig) ToastWindow() time.Duration {
	return time.Duration(c.ToastSeconds * float64(time.Second))
}

// RecycleWindow returns how long the recycle pulse stays visible.
func (c *UIConfig) RecycleWindow() time.Duration {
	return time.Duration(c.RecycleSeconds * float64(time.Second))
}

// CopiedWindow returns how long the "copied" hint stays visible.
func (c *UIConfig) CopiedWindow() time.Duration {
	return time.Duration(c.CopiedSeconds * float64(time.Second))
}

// AutoReturnDelay returns the delay before leaving a finished game.
func (c *UIConfig) AutoReturnDelay() time.Duration {
	return time.Duration(c.AutoReturnSeconds * float64(time.Second))
}

// Load reads a config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = "ws://localhost:3000/ws"
	}
	if c.Server.ReconnectAttempts == 0 {
		c.Server.ReconnectAttempts = 20
	}
	if c.Server.ReconnectDelayMs == 0 {
		c.Server.ReconnectDelayMs = 1000
	}
	if len(c.Server.SessionInvalidMarkers) == 0 {
		// Substrings the server actually emits when a game is gone.
		c.Server.SessionInvalidMarkers = []string{"No existe", "inexistente", "terminado"}
	}
	if c.UI.ToastSeconds == 0 {
		c.UI.ToastSeconds = 3
	}
	if c.UI.RecycleSeconds == 0 {
		c.UI.RecycleSeconds = 2.5
	}
	if c.UI.CopiedSeconds == 0 {
		c.UI.CopiedSeconds = 2
	}
	if c.UI.AutoReturnSeconds == 0 {
		c.UI.AutoReturnSeconds = 5
	}
}
