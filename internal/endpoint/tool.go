package endpoint

import "context"

// InvokeFunc executes a tool call and returns the outcome envelope.
// Implementations never return a Go error; every failure is envelope data.
type InvokeFunc func(ctx context.Context, args map[string]any) Result

// Property is one entry in a synthesized parameter schema.
type Property struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     any
}

// Schema is the introspectable parameter schema synthesized for a tool.
// Properties keep the declaration order of the endpoint's parameters.
type Schema struct {
	Properties []Property
}

// Required returns the names of all required properties in order.
func (s Schema) Required() []string {
	var names []string
	for _, p := range s.Properties {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Tool is the invocable, discoverable counterpart of a registered
// endpoint. Exactly one Tool exists per live endpoint, under the same
// name, created and removed together with it.
type Tool struct {
	Name        string
	Description string
	Schema      Schema

	endpoint *Endpoint
	invoke   InvokeFunc
}

// newTool synthesizes the Tool for a descriptor. Required parameters carry
// no default; optional parameters carry their declared default, which may
// be nil.
func newTool(ep *Endpoint, invoke InvokeFunc) *Tool {
	props := make([]Property, 0, len(ep.Parameters))
	for _, p := range ep.Parameters {
		prop := Property{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Required:    p.Required,
		}
		if !p.Required {
			prop.Default = p.Default
		}
		props = append(props, prop)
	}
	return &Tool{
		Name:        ep.Name,
		Description: ep.Description,
		Schema:      Schema{Properties: props},
		endpoint:    ep,
		invoke:      invoke,
	}
}

// Endpoint returns the descriptor this tool was synthesized from. The
// returned value is shared with the registry and must not be mutated.
func (t *Tool) Endpoint() *Endpoint {
	return t.endpoint
}

// Invoke executes the tool with the supplied arguments and returns the
// result envelope.
func (t *Tool) Invoke(ctx context.Context, args map[string]any) Result {
	return t.invoke(ctx, args)
}
