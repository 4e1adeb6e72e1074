package llm

import (
	"fmt"

	"github.com/agroplan/agroplan/types"
)

// NewProvider creates an LLM provider based on the application configuration.
func NewProvider(cfg *types.AppConfig) (Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("application configuration is nil")
	}

	llmCfg := cfg.LLM
	switch llmCfg.Provider {
	case "gemini", "":
		if llmCfg.APIKey == "" {
			return nil, fmt.Errorf("Gemini API key is not set (set llm.apiKey or the GEMINI_API_KEY environment variable)")
		}
		return NewGeminiProvider(&llmCfg, cfg.Project.TemplatesDir), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmCfg.Provider)
	}
}
