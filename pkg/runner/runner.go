// Package runner performs outbound HTTP execution for the API tester.
//
// Each invocation is exactly one attempt: no retries, no backoff. The whole
// response body is read into memory, timed in wall-clock milliseconds, and
// classified into a transport-safe representation before being handed back.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// payloadMethods is the allow-list of methods whose requests carry a body.
// For anything else the body is dropped before sending to avoid
// transport-layer ambiguity.
var payloadMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Runner issues outbound HTTP calls.
type Runner struct {
	client *resty.Client
	log    *slog.Logger
}

// New creates a Runner. A zero timeout leaves outbound calls unbounded,
// which matches the historical behavior; operators enable a bound via
// configuration.
func New(timeout time.Duration, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}

	client := resty.New().SetRetryCount(0)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Runner{client: client, log: log}
}

// Execute performs one outbound call and returns the classified response.
// The context carries caller-disconnect cancellation; transport failures
// come back as a single error with no retry.
func (r *Runner) Execute(ctx context.Context, req Request) (*Response, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}

	call := r.client.R().SetContext(ctx).SetHeaders(req.Headers)
	if req.Body != "" && payloadMethods[method] {
		call.SetBody([]byte(req.Body))
	}

	r.log.Debug("executing request", "method", method, "url", req.URL)

	start := time.Now()
	resp, err := call.Execute(method, req.URL)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	raw := resp.Body()

	contentType := resp.Header().Get("Content-Type")
	reported := contentType
	if reported == "" {
		reported = DefaultContentType
	}

	enc := encodeBody(raw, contentType, resp.Header().Get("Content-Disposition"))

	headers := make(map[string]string, len(resp.Header()))
	for name, values := range resp.Header() {
		headers[name] = strings.Join(values, ", ")
	}

	statusText := http.StatusText(resp.StatusCode())
	if statusText == "" {
		// Non-standard code; fall back to whatever the server sent.
		statusText = strings.TrimSpace(strings.TrimPrefix(resp.Status(), fmt.Sprintf("%d", resp.StatusCode())))
	}

	return &Response{
		Status:      resp.StatusCode(),
		StatusText:  statusText,
		Headers:     headers,
		Body:        enc.Body,
		BodyType:    enc.Type,
		BodyText:    enc.BodyText,
		Encoding:    enc.Encoding,
		ContentType: reported,
		ElapsedMs:   elapsed,
		SizeBytes:   len(raw),
	}, nil
}
