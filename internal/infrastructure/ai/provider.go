package ai

import (
	"fmt"

	"github.com/jhoicas/elimu-hub/internal/application/ports"
	"github.com/jhoicas/elimu-hub/pkg/config"
)

// Provider names accepted in AI_PROVIDER.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// NewCompletionService picks the adapter named by cfg.Provider.
func NewCompletionService(cfg config.AIConfig) (ports.CompletionService, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, cfg.AnthropicModel), nil
	case ProviderGemini:
		return NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel), nil
	default:
		return nil, fmt.Errorf("ai: unknown AI_PROVIDER %q (openai, anthropic, gemini)", cfg.Provider)
	}
}
