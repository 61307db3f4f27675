package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/certquiz/internal/eventlog"
)

// NewProvider creates a Provider from configuration, wrapped with retry and
// event-logging middleware: caller → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, repo eventlog.Repo) (Provider, error) {
	base, err := newBase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Provider == "mock" {
		return base, nil
	}

	logged := WithLogging(base, repo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewMediaProvider creates a MediaProvider from configuration. Only the
// openai provider supports media; other providers return ErrMediaUnsupported
// so callers can report the feature as unavailable.
func NewMediaProvider(cfg Config) (MediaProvider, error) {
	if cfg.Provider != "openai" {
		return nil, &ErrMediaUnsupported{Provider: cfg.Provider}
	}
	return NewOpenAIProvider(cfg.OpenAI)
}

// NewProviderFromEnv builds a provider from CERTQUIZ_* environment variables,
// falling back to discovery of standard API key variables.
func NewProviderFromEnv(ctx context.Context, repo eventlog.Repo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = discovered
		} else {
			return nil, err
		}
	}
	return NewProvider(ctx, cfg, repo)
}

func newBase(ctx context.Context, cfg Config) (Provider, error) {
	var base Provider
	var err error

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
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return base, nil
}
