package llm

import "strings"

// ForModel returns a provider appropriate for the given model identifier.
// claude-* models route to Anthropic, gpt-*/o1*/o3* to OpenAI, and anything
// else (gemini-* included) to the Gemini OpenAI-compatible endpoint.
func ForModel(cfg ProviderConfig) (Provider, error) {
	model := strings.ToLower(cfg.Model)

	switch {
	case strings.HasPrefix(model, "claude"):
		return NewAnthropicProvider(cfg)
	case strings.HasPrefix(model, "gpt"),
		strings.HasPrefix(model, "o1"),
		strings.HasPrefix(model, "o3"),
		strings.HasPrefix(model, "o4"):
		return NewOpenAIProvider(cfg)
	default:
		return NewGeminiProvider(cfg)
	}
}
