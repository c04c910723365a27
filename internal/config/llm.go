package config

import (
	"os"
	"sync"
)

// LLMConfig selects which hosted model provider backs the text
// generation calls: "gemini" (default) or "openrouter".
type LLMConfig struct {
	Provider string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		provider := os.Getenv("LLM_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
		llmConfig = &LLMConfig{
			Provider: provider,
		}
	})
	return llmConfig
}
