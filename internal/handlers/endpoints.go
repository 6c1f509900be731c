package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/endpoint"
)

// EndpointsHandler manages the registered endpoint collection over HTTP.
// POST and GET on /api/endpoints add and list endpoints; DELETE on
// /api/endpoints/{name} removes one.
type EndpointsHandler struct {
	registry *endpoint.Registry
	logger   *common.Logger
}

// NewEndpointsHandler creates a management handler backed by the registry.
func NewEndpointsHandler(registry *endpoint.Registry, logger *common.Logger) *EndpointsHandler {
	return &EndpointsHandler{
		registry: registry,
		logger:   logger,
	}
}

// ServeHTTP handles the /api/endpoints collection route.
func (h *EndpointsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	RouteByMethod(w, r, MethodRouter{
		http.MethodGet:  h.handleList,
		http.MethodPost: h.handleAdd,
	})
}

// ServeItem handles the /api/endpoints/{name} item route.
func (h *EndpointsHandler) ServeItem(w http.ResponseWriter, r *http.Request) {
	RouteByMethod(w, r, MethodRouter{
		http.MethodDelete: h.handleDelete,
	})
}

func (h *EndpointsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/endpoints/")
	if name == "" {
		WriteError(w, http.StatusBadRequest, "Endpoint name is required")
		return
	}

	if !h.registry.Unregister(name) {
		WriteError(w, http.StatusNotFound, fmt.Sprintf("Endpoint '%s' not found", name))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Successfully removed endpoint '%s'", name),
	})
}

func (h *EndpointsHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to read endpoint config body")
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error adding endpoint: %v", err))
		return
	}

	ep, err := endpoint.ParseConfig(body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Rejected endpoint config")
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error adding endpoint: %v", err))
		return
	}

	if err := h.registry.Register(ep); err != nil {
		h.logger.Warn().Err(err).Str("endpoint", ep.Name).Msg("Endpoint registration failed")
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Error adding endpoint: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Successfully added endpoint '%s'", ep.Name),
		"endpoint": map[string]string{
			"name":   ep.Name,
			"url":    ep.URL,
			"method": string(ep.Method),
		},
	})
}

func (h *EndpointsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	endpoints := h.registry.List()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"endpoints": endpoints,
		"count":     len(endpoints),
	})
}
