package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/config"
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/endpoint"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Handler exposes the endpoint registry through the Model Context
// Protocol. It wraps mcp-go's StreamableHTTPServer and keeps the MCP tool
// table in lock-step with the registry by observing its mutations, so
// tools/list always reflects exactly the registered endpoints.
type Handler struct {
	registry   *endpoint.Registry
	server     *mcpserver.MCPServer
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates the MCP handler for a registry. Attaching the
// handler as the registry's observer replays any tools registered before
// the attach, so the protocol surface is complete from the first request.
func NewHandler(cfg *config.Config, registry *endpoint.Registry, logger *common.Logger) *Handler {
	h := &Handler{
		registry: registry,
		logger:   logger,
	}

	h.server = mcpserver.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	h.streamable = mcpserver.NewStreamableHTTPServer(h.server,
		mcpserver.WithStateLess(true),
	)

	registry.SetObserver(h)

	logger.Info().
		Str("server", cfg.Server.Name).
		Int("tools", registry.Count()).
		Msg("MCP handler initialized")

	return h
}

// Server returns the underlying MCP server, used by tests to drive the
// protocol in-process.
func (h *Handler) Server() *mcpserver.MCPServer {
	return h.server
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}

// ToolAdded mirrors a newly registered tool into the MCP server. A tool
// whose schema fails to render is logged and skipped; it never aborts the
// registration that triggered it or the listing of other tools.
func (h *Handler) ToolAdded(t *endpoint.Tool) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Warn().
				Str("tool", t.Name).
				Str("error", fmt.Sprint(rec)).
				Msg("skipping tool with unrenderable schema")
		}
	}()
	h.server.AddTool(BuildTool(t), h.toolHandler(t.Name))
}

// ToolRemoved drops a tool from the MCP server.
func (h *Handler) ToolRemoved(name string) {
	h.server.DeleteTools(name)
}

// CallTool executes the named tool and renders its envelope as protocol
// content. An unknown name resolves to a text response rather than a
// protocol fault, and any panic during invocation is caught here and
// rendered as an error result. Nothing below this layer may crash the
// adapter.
func (h *Handler) CallTool(ctx context.Context, name string, args map[string]any) (result *mcp.CallToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().
				Str("tool", name).
				Str("error", fmt.Sprint(rec)).
				Msg("tool execution panicked")
			result = errorResult(fmt.Sprintf("Error executing tool: %v", rec))
		}
	}()

	tool, ok := h.registry.GetTool(name)
	if !ok {
		return textResult(fmt.Sprintf("Tool '%s' not found", name))
	}

	return renderResult(tool.Invoke(ctx, args))
}

// toolHandler builds the mcp-go dispatch func for one named tool. The
// name is closed over; the tool itself is re-resolved on every call so a
// tool removed between discovery and invocation fails cleanly.
func (h *Handler) toolHandler(name string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return h.CallTool(ctx, name, req.GetArguments()), nil
	}
}

// renderResult translates a result envelope into protocol text. Success
// with data renders the message followed by the pretty-printed data;
// success without data renders the message alone, and failures render
// their message as an error result.
func renderResult(res endpoint.Result) *mcp.CallToolResult {
	if !res.Success {
		return errorResult(res.Message)
	}
	if !res.HasData() {
		return textResult(res.Message)
	}
	pretty, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return textResult(res.Message)
	}
	return textResult(fmt.Sprintf("%s\n\nResponse Data:\n%s", res.Message, pretty))
}

// textResult wraps plain text in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(text)},
	}
}

// errorResult creates an error tool result with the given message.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(message)},
		IsError: true,
	}
}
