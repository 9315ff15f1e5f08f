// Package ai holds the completion adapters (OpenAI-compatible, Anthropic, Gemini).
// They speak the providers' REST APIs over net/http; no SDK is required.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes completions larger than this are cut.
const maxResponseBytes = 1 << 20

// defaultHTTPTimeout network timeout. Callers also put a deadline on the context.
const defaultHTTPTimeout = 90 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// postJSON sends one POST request. Non-2xx answers come back with their body for error reporting.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload any) ([]byte, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("ai: %s: marshal request: %w", provider, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("ai: %s: build request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("ai: %s: timeout or cancellation: %w", provider, ctx.Err())
		}
		return nil, 0, fmt.Errorf("ai: %s: request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("ai: %s: read response: %w", provider, err)
	}
	return raw, resp.StatusCode, nil
}

// statusError formats a non-2xx answer, preferring the provider's own message.
func statusError(provider string, status int, msg string, raw []byte) error {
	if msg != "" {
		return fmt.Errorf("ai: %s HTTP %d: %s", provider, status, msg)
	}
	return fmt.Errorf("ai: %s HTTP %d: %s", provider, status, truncate(string(raw), 300))
}

func ok(status int) bool { return status >= 200 && status < 300 }

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
