package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/app"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/config"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/server"
)

// configPaths collects repeated -config flags in order.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	serverPort  = flag.Int("port", 0, "Server port (overrides config)")
	serverPortP = flag.Int("p", 0, "Server port (shorthand)")
	serverHost  = flag.String("host", "", "Server host (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("dynamic-mcp %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	cfg := loadConfig()
	logger := common.NewLoggerFromConfig(common.LoggingConfig{
		Level:      cfg.Logging.Level,
		Outputs:    cfg.Logging.Outputs,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})

	logger.Info().
		Str("server", cfg.Server.Name).
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize application")
		os.Exit(1)
	}

	srv := server.New(application)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	// Let the listener come up before announcing the endpoints.
	time.Sleep(100 * time.Millisecond)

	logger.Info().
		Str("mcp_url", fmt.Sprintf("http://%s:%d/mcp", cfg.Server.Host, cfg.Server.Port)).
		Str("management_url", fmt.Sprintf("http://%s:%d/api/endpoints", cfg.Server.Host, cfg.Server.Port)).
		Msg("server ready")

	waitForSignal()
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := application.Close(); err != nil {
		logger.Error().Err(err).Msg("application shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

// loadConfig resolves the configuration from files, environment, and flags,
// exiting with a usable message when validation fails.
func loadConfig() *config.Config {
	paths := []string(configFiles)
	if len(paths) == 0 {
		if found, ok := discoverConfigFile(); ok {
			paths = append(paths, found)
		}
	}

	cfg, err := config.LoadFromFiles(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	port := *serverPort
	if *serverPortP != 0 {
		port = *serverPortP
	}
	config.ApplyFlagOverrides(cfg, port, *serverHost)

	if issues := cfg.Validate(); len(issues) > 0 {
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Configuration error: mandatory fields are missing or invalid:")
		fmt.Fprintln(os.Stderr, "")
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "  - %s\n", issue)
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "See config/dynamic-mcp.toml for a complete example.")
		fmt.Fprintln(os.Stderr, "Values can be set via TOML file, environment variables (HOST, PORT,")
		fmt.Fprintln(os.Stderr, "LATINUM_SERVER_NAME, LATINUM_LOG_LEVEL), or CLI flags.")
		fmt.Fprintln(os.Stderr, "")
		os.Exit(1)
	}

	return cfg
}

// discoverConfigFile looks for dynamic-mcp.toml next to the binary first,
// then relative to the working directory, so the config is found no matter
// where the process was launched from.
func discoverConfigFile() (string, bool) {
	var paths []string
	if exe, err := os.Executable(); err == nil {
		binDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(binDir, "dynamic-mcp.toml"),
			filepath.Join(binDir, "config", "dynamic-mcp.toml"),
		)
	}
	paths = append(paths,
		"dynamic-mcp.toml",
		"config/dynamic-mcp.toml",
		"docker/dynamic-mcp.toml",
	)

	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
}
