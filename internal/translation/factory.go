package translation

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Config selects and configures a translation provider.
type Config struct {
	Provider     string
	OpenAIKey    string
	OpenAIModel  string
	GeminiKey    string
	GeminiModel  string
	DisableCache bool
}

// New builds the configured translator, wrapped in a cache unless disabled.
func New(ctx context.Context, cfg Config) (Translator, error) {
	var tr Translator

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		tr = NewOpenAITranslator(cfg.OpenAIKey, cfg.OpenAIModel)
	case ProviderGemini:
		g, err := NewGeminiTranslator(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		tr = g
	case ProviderNone:
		return Passthrough{}, nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", cfg.Provider)
	}

	if cfg.DisableCache {
		return tr, nil
	}
	return NewCached(tr), nil
}
