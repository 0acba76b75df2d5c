package service

import (
	"context"
	"fmt"

	"github.com/pageza/recipegen/config"
)

// TextGenerator maps a prompt to a text completion
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Default models per provider
const (
	DefaultGeminiModel   = "gemini-2.5-flash"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultDeepSeekModel = "deepseek-chat"
)

// NewTextGenerator builds the generator selected by cfg.LLMProvider
func NewTextGenerator(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiGenerator(ctx, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMAPIURL)
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMAPIURL)
	case config.ProviderDeepSeek:
		return NewDeepSeekGenerator(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMAPIURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}

// ProviderName returns a short name for the generator, used in error reports
func ProviderName(gen TextGenerator) string {
	switch gen.(type) {
	case *GeminiGenerator:
		return config.ProviderGemini
	case *OpenAIGenerator:
		return config.ProviderOpenAI
	case *DeepSeekGenerator:
		return config.ProviderDeepSeek
	default:
		return "llm"
	}
}
