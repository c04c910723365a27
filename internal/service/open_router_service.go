package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rghose/resume-screener/internal/config"
	"github.com/tidwall/gjson"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterService is the alternate model provider, reachable over
// its OpenAI-compatible chat completions endpoint.
type OpenRouterService struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) (*OpenRouterService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENROUTER_API_KEY not set", ErrAuth)
	}
	client := resty.New().
		SetBaseURL(openRouterBaseURL).
		SetTimeout(90 * time.Second)
	return &OpenRouterService{
		client: client,
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}, nil
}

func (s *OpenRouterService) Generate(ctx context.Context, prompt string) (string, error) {
	return s.chat(ctx, prompt)
}

// GenerateFacts has no server-side schema enforcement here, so the
// JSON-only contract rides on the prompt and the caller's tolerant
// parser handles stray fences.
func (s *OpenRouterService) GenerateFacts(ctx context.Context, prompt string) (string, error) {
	return s.chat(ctx, prompt+"\n\nReturn only a single valid JSON object. Do not include explanations, markdown, or text before or after the JSON.")
}

func (s *OpenRouterService) chat(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an AI assistant evaluating job applications and answering data questions."},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if resp.IsError() {
		switch resp.StatusCode() {
		case 401, 403:
			return "", fmt.Errorf("%w: status %d", ErrAuth, resp.StatusCode())
		case 429:
			return "", fmt.Errorf("%w: status %d", ErrQuotaExceeded, resp.StatusCode())
		default:
			return "", fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode(), resp.String())
		}
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("%w: no content in completion", ErrMalformedResponse)
	}
	return text, nil
}
