package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Merge.
const (
	EnvServer  = "SIMPLE_REDIS_SERVER"
	EnvOutput  = "SIMPLE_REDIS_OUTPUT"
	EnvTimeout = "SIMPLE_REDIS_TIMEOUT"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".simple-redis", "cli.yaml")
}

// Load loads CLI configuration from file. A missing file yields Default().
// Fields absent from the file keep their defaults.
func Load(path string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cli config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse cli config %s: %w", path, err)
	}
	if cfg.Connections == nil {
		cfg.Connections = make(map[string]ConnectionConfig)
	}
	return cfg, nil
}

// Save writes cfg to path with 0600 permissions, creating the directory.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode cli config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// Merge overrides cfg with environment variables, then with flags. Flag
// keys are "server", "output" and "timeout". Empty values are ignored.
func Merge(cfg *CLIConfig, env map[string]string, flags map[string]string) (*CLIConfig, error) {
	out := *cfg
	apply := func(server, output, timeout string) error {
		if server != "" {
			out.DefaultServer = server
			out.CurrentConnection = ""
		}
		if output != "" {
			out.DefaultOutput = output
		}
		if timeout != "" {
			d, err := time.ParseDuration(timeout)
			if err != nil {
				return fmt.Errorf("invalid timeout %q: %w", timeout, err)
			}
			out.Timeout = d
		}
		return nil
	}

	if err := apply(env[EnvServer], env[EnvOutput], env[EnvTimeout]); err != nil {
		return nil, err
	}
	if err := apply(flags["server"], flags["output"], flags["timeout"]); err != nil {
		return nil, err
	}
	return &out, nil
}

// Environ returns the CLI environment variables that are set.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, k := range []string{EnvServer, EnvOutput, EnvTimeout} {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env
}
