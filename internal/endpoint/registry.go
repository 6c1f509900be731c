package endpoint

import (
	"context"
	"fmt"
	"sync"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
)

// DuplicateNameError indicates a registration collided with an existing
// endpoint name. The registry is left unchanged when it occurs.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("Endpoint '%s' already exists", e.Name)
}

// Invoker executes a registered endpoint with call-time arguments.
type Invoker interface {
	Call(ctx context.Context, ep *Endpoint, args map[string]any) Result
}

// ToolObserver is notified after the registry commits a mutation.
// Notifications fire while the registry lock is held, so a mirror of the
// tool set stays in lock-step with the registry itself.
type ToolObserver interface {
	ToolAdded(t *Tool)
	ToolRemoved(name string)
}

// registration pairs a descriptor with its synthesized tool. The pair
// lives and dies together under one map entry.
type registration struct {
	endpoint *Endpoint
	tool     *Tool
}

// Registry owns the mapping from endpoint name to its descriptor and
// synthesized tool, and is the single source of truth for what exists.
// Reads take the read lock; register and unregister serialize on the
// write lock, so concurrent readers observe either the pre- or post-state
// of a mutation, never a descriptor without its tool.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registration
	order   []string

	invoker  Invoker
	observer ToolObserver
	logger   *common.Logger
}

// NewRegistry creates an empty registry whose synthesized tools execute
// through the given invoker.
func NewRegistry(invoker Invoker, logger *common.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*registration),
		invoker: invoker,
		logger:  logger,
	}
}

// SetObserver attaches the single observer notified of tool additions and
// removals. Tools already registered are replayed to the observer so a
// late-attached mirror starts complete.
func (r *Registry) SetObserver(o ToolObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = o
	if o == nil {
		return
	}
	for _, name := range r.order {
		o.ToolAdded(r.entries[name].tool)
	}
}

// Register validates the descriptor, synthesizes its tool, and inserts
// both atomically. A name collision returns DuplicateNameError and leaves
// the registry unchanged.
func (r *Registry) Register(ep *Endpoint) error {
	if err := ep.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[ep.Name]; exists {
		return &DuplicateNameError{Name: ep.Name}
	}

	tool := newTool(ep, r.invokeFunc(ep.Name))
	r.entries[ep.Name] = &registration{endpoint: ep, tool: tool}
	r.order = append(r.order, ep.Name)

	if r.observer != nil {
		r.observer.ToolAdded(tool)
	}

	r.logger.Info().
		Str("endpoint", ep.Name).
		Str("method", string(ep.Method)).
		Str("url", ep.URL).
		Int("params", len(ep.Parameters)).
		Msg("endpoint registered")
	return nil
}

// Unregister removes the descriptor and its tool together. It reports
// whether anything was removed and never fails on a missing name.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; !ok {
		return false
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.observer != nil {
		r.observer.ToolRemoved(name)
	}

	r.logger.Info().Str("endpoint", name).Msg("endpoint removed")
	return true
}

// Get returns the descriptor registered under name.
func (r *Registry) Get(name string) (*Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return reg.endpoint, true
}

// GetTool returns the tool registered under name.
func (r *Registry) GetTool(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return reg.tool, true
}

// List returns a snapshot of all registered descriptors in registration
// order. The snapshot holds value copies; mutating it does not affect the
// registry.
func (r *Registry) List() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Endpoint, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].endpoint.clone())
	}
	return out
}

// Tools returns all live tools in registration order.
func (r *Registry) Tools() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].tool)
	}
	return out
}

// Count returns the number of registered endpoints.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// invokeFunc builds the invoke closure for a named endpoint. The closure
// resolves the descriptor at call time, so a tool invoked after its
// endpoint was removed fails with a not-found envelope instead of calling
// a stale target.
func (r *Registry) invokeFunc(name string) InvokeFunc {
	return func(ctx context.Context, args map[string]any) Result {
		r.mu.RLock()
		reg, ok := r.entries[name]
		r.mu.RUnlock()
		if !ok {
			return Failuref("Endpoint '%s' not found", name)
		}
		return r.invoker.Call(ctx, reg.endpoint, args)
	}
}
