package handlers

import (
	"net/http"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/endpoint"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	serverName string
	registry   *endpoint.Registry
	logger     *common.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(serverName string, registry *endpoint.Registry, logger *common.Logger) *HealthHandler {
	return &HealthHandler{
		serverName: serverName,
		registry:   registry,
		logger:     logger,
	}
}

// ServeHTTP handles GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"server":          h.serverName,
		"endpoints_count": h.registry.Count(),
		"tools_count":     len(h.registry.Tools()),
	})
}
