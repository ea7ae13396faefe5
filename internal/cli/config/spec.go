package config

import "time"

// CLIConfig is the configuration for simple-redis-cli.
type CLIConfig struct {
	DefaultServer string        `yaml:"default_server"`
	DefaultOutput string        `yaml:"default_output"` // text, table, json, yaml
	Timeout       time.Duration `yaml:"timeout"`

	// HistoryFile overrides the REPL history location.
	HistoryFile string `yaml:"history_file,omitempty"`

	// Saved connections
	Connections map[string]ConnectionConfig `yaml:"connections,omitempty"`

	// Current active connection
	CurrentConnection string `yaml:"current_connection,omitempty"`
}

// ConnectionConfig stores a named server.
type ConnectionConfig struct {
	Server string `yaml:"server"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "127.0.0.1:7890",
		DefaultOutput: "text",
		Timeout:       5 * time.Second,
		Connections:   make(map[string]ConnectionConfig),
	}
}

// Server returns the address of the current connection when one is set
// and saved, otherwise DefaultServer.
func (c *CLIConfig) Server() string {
	if c.CurrentConnection != "" {
		if conn, ok := c.Connections[c.CurrentConnection]; ok && conn.Server != "" {
			return conn.Server
		}
	}
	return c.DefaultServer
}
