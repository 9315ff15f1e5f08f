package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
)

// Compile-time check that GeminiService implements CompletionService.
var _ ports.CompletionService = (*GeminiService)(nil)

// GeminiService adapter for the Google Gemini generateContent REST API.
type GeminiService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGeminiService builds the adapter. model is usually "gemini-1.5-flash".
func NewGeminiService(apiKey, baseURL, model string) *GeminiService {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	return &GeminiService{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: newHTTPClient(),
	}
}

// ── Gemini API structures ─────────────────────────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"` // application/json forces a bare JSON answer
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Port implementation ───────────────────────────────────────────────────────

// Complete sends one generateContent request. Assistant turns use Gemini's "model" role.
func (s *GeminiService) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("ai: gemini: GEMINI_API_KEY not configured")
	}

	payload := geminiRequest{
		Contents: make([]geminiContent, 0, len(req.Messages)),
		GenerationConfig: genConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		},
	}
	if req.System != "" {
		payload.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	if req.JSON {
		payload.GenerationConfig.ResponseMIMEType = "application/json"
	}
	for _, m := range req.Messages {
		role := "user"
		if m.Role == ports.RoleAssistant {
			role = "model"
		}
		payload.Contents = append(payload.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, url.PathEscape(s.model))
	raw, status, err := postJSON(ctx, s.httpClient, "gemini", endpoint, map[string]string{
		"x-goog-api-key": s.apiKey,
	}, payload)
	if err != nil {
		return "", err
	}

	var resp geminiResponse
	jsonErr := json.Unmarshal(raw, &resp)
	if !ok(status) {
		msg := ""
		if jsonErr == nil && resp.Error != nil {
			msg = resp.Error.Message
		}
		return "", statusError("gemini", status, msg, raw)
	}
	if jsonErr != nil {
		return "", fmt.Errorf("ai: gemini: decode response: %w", jsonErr)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("ai: gemini: empty response")
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String()), nil
}
