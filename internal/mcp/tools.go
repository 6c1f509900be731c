package mcp

import (
	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/endpoint"
	"github.com/mark3labs/mcp-go/mcp"
)

// BuildTool renders a synthesized tool's parameter schema as an mcp.Tool
// suitable for tools/list discovery.
func BuildTool(t *endpoint.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Schema.Properties {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(t.Name, opts...)
}

// buildParamOption maps a schema property to the matching mcp-go tool
// option. Optional string, number, and boolean properties surface their
// declared default in the schema; object and array stay unconstrained.
func buildParamOption(p endpoint.Property) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}

	switch p.Type {
	case "number":
		if v, ok := p.Default.(float64); ok {
			opts = append(opts, mcp.DefaultNumber(v))
		}
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		if v, ok := p.Default.(bool); ok {
			opts = append(opts, mcp.DefaultBool(v))
		}
		return mcp.WithBoolean(p.Name, opts...)
	case "object":
		return mcp.WithObject(p.Name, opts...)
	case "array":
		return mcp.WithArray(p.Name, opts...)
	default:
		// string
		if v, ok := p.Default.(string); ok {
			opts = append(opts, mcp.DefaultString(v))
		}
		return mcp.WithString(p.Name, opts...)
	}
}
