package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Client  ClientConfig  `toml:"client"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ClientConfig contains settings for the outbound HTTP client used to
// execute registered endpoints.
type ClientConfig struct {
	MaxResponseMB int `toml:"max_response_mb"`
}

// MaxResponseBytes returns the response body cap in bytes.
func (c ClientConfig) MaxResponseBytes() int64 {
	if c.MaxResponseMB <= 0 {
		return 50 << 20
	}
	return int64(c.MaxResponseMB) << 20
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// LoadFromFiles resolves the configuration with priority
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier
// ones for the fields they set.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := mergeFile(config, path); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// mergeFile overlays one TOML file onto the config.
func mergeFile(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
// HOST and PORT follow the deployment-platform convention; LATINUM_*
// variables cover the rest.
func applyEnvOverrides(config *Config) {
	if host := os.Getenv("HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if name := os.Getenv("LATINUM_SERVER_NAME"); name != "" {
		config.Server.Name = name
	}
	if level := os.Getenv("LATINUM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory configuration and returns a list of issues.
// An empty list means the configuration is usable.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Name == "" {
		issues = append(issues, "server.name must not be empty")
	}
	if c.Server.Host == "" {
		issues = append(issues, "server.host must not be empty")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Client.MaxResponseMB < 0 {
		issues = append(issues, fmt.Sprintf("client.max_response_mb must not be negative (got %d)", c.Client.MaxResponseMB))
	}
	return issues
}
