package handlers

import (
	"encoding/json"
	"net/http"
)

// RequireMethod answers 405 unless the request uses the given method.
// HEAD is accepted wherever GET is.
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	if method == http.MethodGet && r.Method == http.MethodHead {
		return true
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// WriteJSON encodes data as the JSON response body under the given status.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a management API failure response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// MethodRouter maps HTTP methods to handlers.
type MethodRouter map[string]http.HandlerFunc

// RouteByMethod dispatches on the request method, answering 405 for anything
// not in the map. HEAD requests fall back to the GET handler.
func RouteByMethod(w http.ResponseWriter, r *http.Request, routes MethodRouter) {
	method := r.Method
	if method == http.MethodHead {
		if _, ok := routes[http.MethodHead]; !ok {
			method = http.MethodGet
		}
	}
	handler, ok := routes[method]
	if !ok {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handler(w, r)
}
