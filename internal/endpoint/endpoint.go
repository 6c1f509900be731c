// Package endpoint implements the runtime registry of proxied HTTP API
// endpoints and the execution pipeline that turns a registered descriptor
// plus call-time arguments into an upstream request and a normalized result.
package endpoint

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DefaultTimeoutSeconds is the total-call deadline applied when a
// descriptor does not set its own timeout.
const DefaultTimeoutSeconds = 30.0

// Method is one of the HTTP methods an endpoint may declare.
type Method string

// Supported endpoint methods.
const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// allowedMethods is the whitelist of HTTP methods for registered endpoints.
var allowedMethods = map[Method]bool{
	MethodGet: true, MethodPost: true, MethodPut: true, MethodPatch: true, MethodDelete: true,
}

// paramTypes is the set of declarable parameter types.
var paramTypes = map[string]bool{
	"string": true, "number": true, "boolean": true, "object": true, "array": true,
}

// Parameter describes one declared input of an endpoint.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string, number, boolean, object, array
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     any    `json:"default"`
}

// UnmarshalJSON decodes a parameter, defaulting required to true when the
// field is absent from the payload.
func (p *Parameter) UnmarshalJSON(data []byte) error {
	type parameter Parameter
	aux := struct {
		*parameter
		Required *bool `json:"required"`
	}{parameter: (*parameter)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Required = aux.Required == nil || *aux.Required
	return nil
}

// Endpoint is the validated descriptor for one proxied operation. An
// Endpoint is immutable once registered; the only way to change one is to
// remove it and register a replacement.
type Endpoint struct {
	Name        string            `json:"name"`
	URL         string            `json:"url"`
	Method      Method            `json:"method"`
	Description string            `json:"description"`
	Parameters  []Parameter       `json:"parameters"`
	Headers     map[string]string `json:"headers"`
	Timeout     float64           `json:"timeout"`
}

// ParseConfig decodes a registration payload into a validated Endpoint.
// The method token is normalized to upper case, a missing timeout gets the
// default, and a missing parameters list becomes empty rather than null.
func ParseConfig(data []byte) (*Endpoint, error) {
	var raw struct {
		Name        string            `json:"name"`
		URL         string            `json:"url"`
		Method      string            `json:"method"`
		Description string            `json:"description"`
		Parameters  []Parameter       `json:"parameters"`
		Headers     map[string]string `json:"headers"`
		Timeout     *float64          `json:"timeout"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid endpoint config: %w", err)
	}

	ep := &Endpoint{
		Name:        raw.Name,
		URL:         raw.URL,
		Method:      Method(strings.ToUpper(strings.TrimSpace(raw.Method))),
		Description: raw.Description,
		Parameters:  raw.Parameters,
		Headers:     raw.Headers,
		Timeout:     DefaultTimeoutSeconds,
	}
	if ep.Parameters == nil {
		ep.Parameters = []Parameter{}
	}
	if raw.Timeout != nil {
		if *raw.Timeout <= 0 {
			return nil, fmt.Errorf("endpoint %q timeout must be positive (got %g)", ep.Name, *raw.Timeout)
		}
		ep.Timeout = *raw.Timeout
	}

	if err := ep.Validate(); err != nil {
		return nil, err
	}
	return ep, nil
}

// Validate checks the descriptor invariants: non-empty name and URL, a
// whitelisted method, a positive timeout, and well-formed parameters with
// unique names and known types.
func (e *Endpoint) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("endpoint name is required")
	}
	if e.URL == "" {
		return fmt.Errorf("endpoint %q has empty url", e.Name)
	}
	if e.Method == "" {
		return fmt.Errorf("endpoint %q has empty method", e.Name)
	}
	if !allowedMethods[e.Method] {
		return fmt.Errorf("endpoint %q has unsupported method %q", e.Name, e.Method)
	}
	if e.Timeout < 0 {
		return fmt.Errorf("endpoint %q has negative timeout %g", e.Name, e.Timeout)
	}

	seen := make(map[string]bool, len(e.Parameters))
	for i, p := range e.Parameters {
		if p.Name == "" {
			return fmt.Errorf("endpoint %q parameter %d has empty name", e.Name, i)
		}
		if p.Type == "" {
			return fmt.Errorf("endpoint %q parameter %q has empty type", e.Name, p.Name)
		}
		if !paramTypes[p.Type] {
			return fmt.Errorf("endpoint %q parameter %q has unsupported type %q", e.Name, p.Name, p.Type)
		}
		if seen[p.Name] {
			return fmt.Errorf("endpoint %q has duplicate parameter %q", e.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// EffectiveTimeout returns the per-call deadline, applying the default when
// the descriptor does not set a positive timeout.
func (e *Endpoint) EffectiveTimeout() time.Duration {
	t := e.Timeout
	if t <= 0 {
		t = DefaultTimeoutSeconds
	}
	return time.Duration(t * float64(time.Second))
}

// clone returns a value copy with its own parameter slice and header map,
// so callers holding a snapshot cannot reach back into registry state.
func (e *Endpoint) clone() Endpoint {
	out := *e
	if e.Parameters != nil {
		out.Parameters = make([]Parameter, len(e.Parameters))
		copy(out.Parameters, e.Parameters)
	}
	if e.Headers != nil {
		out.Headers = make(map[string]string, len(e.Headers))
		for k, v := range e.Headers {
			out.Headers[k] = v
		}
	}
	return out
}
