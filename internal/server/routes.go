package server

import (
	"net/http"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (streamable HTTP transport)
	mux.Handle("/mcp", s.app.MCPHandler)

	// Endpoint management API
	mux.HandleFunc("/api/endpoints", s.app.EndpointsHandler.ServeHTTP)
	mux.HandleFunc("/api/endpoints/", s.app.EndpointsHandler.ServeItem)

	// Health and version
	mux.HandleFunc("/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, http.StatusNotFound, "Not found")
}
