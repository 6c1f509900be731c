package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "dynamic-mcp-server",
			Host: "0.0.0.0",
			Port: 8080,
		},
		Client: ClientConfig{
			MaxResponseMB: 50,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "./logs/dynamic-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}
