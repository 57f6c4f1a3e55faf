package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// NewProvider builds the configured provider. Each attempt is logged and,
// when reqLog is non-nil, journaled; retries wrap the logging so failed
// attempts show up too.
func NewProvider(ctx context.Context, cfg Config, reqLog RequestLog) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		base = NewScripted()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", cfg.Provider, err)
	}
	slog.Debug("llm provider ready", "provider", cfg.Provider, "model", base.ModelID())

	return WithRetry(WithLogging(base, cfg.Provider, reqLog), cfg.Retry), nil
}
