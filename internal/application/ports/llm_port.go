package ports

import "context"

// Chat roles understood by every completion adapter.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message one turn sent to the completion model.
type Message struct {
	Role    string
	Content string
}

// CompletionRequest a single chat-completion call.
// JSON asks the provider for a JSON object when it supports a structured-output switch.
type CompletionRequest struct {
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSON        bool
}

// CompletionService outbound port to a text-completion API (OpenAI-compatible, Anthropic, Gemini...).
// Every call issues exactly one HTTP request: implementations do not retry, cache or stream.
// The context should carry a deadline so slow providers do not pin request goroutines.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
