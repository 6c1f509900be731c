package app

import (
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/config"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/endpoint"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/handlers"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/mcp"
)

// App is the wired component graph: registry, executor and the HTTP
// handlers that the server mounts.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Registry *endpoint.Registry

	// HTTP handlers
	MCPHandler       *mcp.Handler
	EndpointsHandler *handlers.EndpointsHandler
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
}

// New builds the component graph from a validated config.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	executor := endpoint.NewExecutor(cfg.Client.MaxResponseBytes(), logger)
	a.Registry = endpoint.NewRegistry(executor, logger)

	a.initHandlers()

	logger.Info().Msg("application components wired")

	return a, nil
}

func (a *App) initHandlers() {
	a.MCPHandler = mcp.NewHandler(a.Config, a.Registry, a.Logger)
	a.EndpointsHandler = handlers.NewEndpointsHandler(a.Registry, a.Logger)
	a.HealthHandler = handlers.NewHealthHandler(a.Config.Server.Name, a.Registry, a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)

	a.Logger.Debug().Msg("HTTP handlers ready")
}

// Close releases application resources. The registry and handlers hold
// no external state, so today this only exists for a uniform shutdown
// path in main.
func (a *App) Close() error {
	return nil
}
