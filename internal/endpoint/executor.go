package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Latinum-Agentic-Commerce/latinum-dynamic-mcp/internal/common"
)

// defaultMaxResponseSize caps response bodies to prevent OOM from
// unexpectedly large upstream responses (50MB).
const defaultMaxResponseSize = 50 << 20

// Executor turns a registered endpoint plus call-time arguments into one
// outbound HTTP request and normalizes whatever comes back into a Result.
// One executor is shared by all endpoints; each invocation owns its own
// request, deadline, and response body end to end.
type Executor struct {
	client      *http.Client
	maxResponse int64
	logger      *common.Logger
}

// NewExecutor creates an executor with the given response body cap in
// bytes. A non-positive cap selects the 50MB default. The underlying
// client carries no global timeout; each call applies its endpoint's own
// deadline via context.
func NewExecutor(maxResponseBytes int64, logger *common.Logger) *Executor {
	if maxResponseBytes <= 0 {
		maxResponseBytes = defaultMaxResponseSize
	}
	return &Executor{
		client:      &http.Client{},
		maxResponse: maxResponseBytes,
		logger:      logger,
	}
}

// Call executes one endpoint invocation: required-argument validation,
// request construction, the upstream round-trip, and response
// normalization. Every failure path resolves to an envelope; Call never
// panics on bad input and never returns a Go error.
func (x *Executor) Call(ctx context.Context, ep *Endpoint, args map[string]any) Result {
	if args == nil {
		args = map[string]any{}
	}

	// Required parameters must be present before any network activity.
	for _, p := range ep.Parameters {
		if p.Required {
			if _, ok := args[p.Name]; !ok {
				return Failuref("Missing required parameter: %s", p.Name)
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, ep.EffectiveTimeout())
	defer cancel()

	req, err := buildRequest(ctx, ep, args)
	if err != nil {
		return Failuref("Error calling API: %v", err)
	}

	x.logger.Debug().
		Str("endpoint", ep.Name).
		Str("method", string(ep.Method)).
		Str("url", req.URL.String()).
		Msg("endpoint request")

	start := time.Now()
	resp, err := x.client.Do(req)
	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			x.logger.Warn().
				Str("endpoint", ep.Name).
				Int64("duration_ms", duration.Milliseconds()).
				Msg("endpoint request timed out")
			return Failuref("Request to %s timed out after %g seconds", ep.URL, ep.EffectiveTimeout().Seconds())
		}
		x.logger.Error().
			Str("endpoint", ep.Name).
			Int64("duration_ms", duration.Milliseconds()).
			Str("error", err.Error()).
			Msg("endpoint request failed")
		return Failuref("Error calling API: %v", err)
	}
	defer resp.Body.Close()

	result := x.normalize(resp, ep.Name)

	x.logger.Debug().
		Str("endpoint", ep.Name).
		Int("status", resp.StatusCode).
		Int64("duration_ms", duration.Milliseconds()).
		Msg("endpoint response")

	return result
}

// buildRequest constructs the outbound request for one invocation. Every
// argument whose name appears as a {placeholder} in the URL template is
// substituted textually. GET and DELETE drop the path-consumed arguments
// and send the remainder as query parameters; POST, PUT, and PATCH always
// send the full original argument map as a JSON body, defaulting
// Content-Type to application/json unless the descriptor set it. The
// descriptor itself is never mutated.
func buildRequest(ctx context.Context, ep *Endpoint, args map[string]any) (*http.Request, error) {
	target := ep.URL
	remaining := make(map[string]any, len(args))
	for k, v := range args {
		remaining[k] = v
	}

	for name, value := range args {
		placeholder := "{" + name + "}"
		if !strings.Contains(target, placeholder) {
			continue
		}
		target = strings.ReplaceAll(target, placeholder, fmt.Sprint(value))
		if ep.Method == MethodGet || ep.Method == MethodDelete {
			delete(remaining, name)
		}
	}

	headers := make(http.Header)
	for k, v := range ep.Headers {
		headers.Set(k, v)
	}

	var body io.Reader
	switch ep.Method {
	case MethodGet, MethodDelete:
		if len(remaining) > 0 {
			query := url.Values{}
			for k, v := range remaining {
				query.Set(k, fmt.Sprint(v))
			}
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + query.Encode()
		}
	default:
		payload, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
		if headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", "application/json")
		}
	}

	req, err := http.NewRequestWithContext(ctx, string(ep.Method), target, body)
	if err != nil {
		return nil, err
	}
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}
	return req, nil
}

// normalize converts an upstream response into the result envelope. The
// body decodes as JSON when the response declares a JSON content type and
// as raw text otherwise; a malformed declared-JSON body becomes a
// processing failure that still carries the status code. Statuses in the
// 2xx range classify as success, everything else as an upstream failure.
func (x *Executor) normalize(resp *http.Response, name string) Result {
	body, err := io.ReadAll(io.LimitReader(resp.Body, x.maxResponse))
	if err != nil {
		return Result{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Error processing response: %v", err),
		}
	}

	var data any
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(contentType, "json") {
		if err := json.Unmarshal(body, &data); err != nil {
			return Result{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("Error processing response: %v", err),
			}
		}
	} else {
		data = string(body)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{
			Success:    true,
			StatusCode: resp.StatusCode,
			Data:       data,
			Message:    fmt.Sprintf("Successfully called %s", name),
		}
	}
	return Result{
		StatusCode: resp.StatusCode,
		Data:       data,
		Message:    fmt.Sprintf("API call failed with status %d", resp.StatusCode),
	}
}
