package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
)

// Compile-time check that AnthropicService implements CompletionService.
var _ ports.CompletionService = (*AnthropicService)(nil)

const anthropicVersion = "2023-06-01"

// AnthropicService adapter for the Anthropic Messages API (Claude).
type AnthropicService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewAnthropicService builds the adapter. model is usually "claude-3-5-haiku-20241022".
// With an empty apiKey calls return a descriptive error instead of panicking.
func NewAnthropicService(apiKey, baseURL, model string) *AnthropicService {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1"
	}
	return &AnthropicService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: newHTTPClient(),
	}
}

// ── Anthropic Messages API structures ─────────────────────────────────────────

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Port implementation ───────────────────────────────────────────────────────

// Complete sends one Messages request. The API has no JSON switch, so req.JSON relies on the prompt.
func (s *AnthropicService) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("ai: anthropic: ANTHROPIC_API_KEY not configured")
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	payload := anthropicRequest{
		Model:       s.model,
		MaxTokens:   maxTokens,
		System:      req.System,
		Temperature: req.Temperature,
		Messages:    make([]anthropicMessage, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		payload.Messages = append(payload.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}

	raw, status, err := postJSON(ctx, s.httpClient, "anthropic", s.baseURL+"/messages", map[string]string{
		"x-api-key":         s.apiKey,
		"anthropic-version": anthropicVersion,
	}, payload)
	if err != nil {
		return "", err
	}

	var resp anthropicResponse
	jsonErr := json.Unmarshal(raw, &resp)
	if !ok(status) {
		msg := ""
		if jsonErr == nil && resp.Error != nil {
			msg = resp.Error.Type + ": " + resp.Error.Message
		}
		return "", statusError("anthropic", status, msg, raw)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("ai: anthropic: decode response: %w", jsonErr)
	}

	var b strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("ai: anthropic: empty response")
	}
	return strings.TrimSpace(b.String()), nil
}
