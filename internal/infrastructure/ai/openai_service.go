package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
)

var _ ports.CompletionService = (*OpenAIService)(nil)

// OpenAIService adapter for the OpenAI chat-completions API and compatible servers
// (Ollama, vLLM, OpenRouter...). The base URL includes the version, e.g. https://api.openai.com/v1.
type OpenAIService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOpenAIService builds the adapter. An empty apiKey is sent without Authorization,
// which local OpenAI-compatible servers accept.
func NewOpenAIService(apiKey, baseURL, model string) *OpenAIService {
	return &OpenAIService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: newHTTPClient(),
	}
}

// ── Protocol ──────────────────────────────────────────────────────────────────

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the system prompt and the conversation as one chat-completion request.
func (s *OpenAIService) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("ai: openai: OPENAI_BASE_URL not configured")
	}

	msgs := make([]openAIMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openAIMessage{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openAIMessage{Role: m.Role, Content: m.Content})
	}
	payload := openAIRequest{
		Model:       s.model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.JSON {
		payload.ResponseFormat = &struct {
			Type string `json:"type"`
		}{Type: "json_object"}
	}

	headers := map[string]string{}
	if s.apiKey != "" {
		headers["Authorization"] = "Bearer " + s.apiKey
	}
	raw, status, err := postJSON(ctx, s.httpClient, "openai", s.baseURL+"/chat/completions", headers, payload)
	if err != nil {
		return "", err
	}

	var resp openAIResponse
	jsonErr := json.Unmarshal(raw, &resp)
	if !ok(status) {
		msg := ""
		if jsonErr == nil && resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", statusError("openai", status, msg, raw)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("ai: openai: decode response: %w", jsonErr)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("ai: openai: no choices in response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
