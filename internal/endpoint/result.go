package endpoint

import "fmt"

// Result is the uniform envelope returned by every endpoint invocation.
// Success carries the upstream status and decoded body; failures carry a
// human-readable message and, when a response was received, the status and
// body as well. Transport failures have no status code.
type Result struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
}

// Failuref builds a failure envelope with a formatted message and no
// status code.
func Failuref(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// HasData reports whether the envelope carries renderable data. Empty
// collections, empty strings, zero, and false all count as no data.
func (r Result) HasData() bool {
	switch v := r.Data.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}
