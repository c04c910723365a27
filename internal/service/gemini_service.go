package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rghose/resume-screener/internal/config"
	"google.golang.org/genai"
)

// GeminiService talks to the Gemini API through the official SDK. It
// wraps every call in a retry loop with exponential backoff and keeps
// a consecutive-error count as a simple circuit breaker.
type GeminiService struct {
	client            *genai.Client
	model             string
	maxRetries        int
	baseDelay         time.Duration
	maxDelay          time.Duration
	requestTimeout    time.Duration
	consecutiveErrors atomic.Int32 // one service is shared across handlers
	circuitBreakerMax int32
}

// extractionSchema constrains the extraction pass to the facts
// document. There is deliberately no score field here.
var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"matched_skills_full":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"missing_skills_full":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"top_qualifications_full":        {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"quantifiable_achievements_full": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"relevant_experience_summary":    {Type: genai.TypeString},
		"years_of_experience":            {Type: genai.TypeNumber},
		"education_level":                {Type: genai.TypeString},
	},
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", ErrAuth)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		client:            client,
		model:             cfg.Model,
		maxRetries:        3,
		baseDelay:         time.Second,
		maxDelay:          90 * time.Second,
		requestTimeout:    90 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

func (s *GeminiService) Generate(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.1)),
	})
}

func (s *GeminiService) GenerateFacts(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.1)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   extractionSchema,
	})
}

func (s *GeminiService) generate(ctx context.Context, prompt string, genConfig *genai.GenerateContentConfig) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}
	if n := s.consecutiveErrors.Load(); n >= s.circuitBreakerMax {
		return "", fmt.Errorf("%w: circuit breaker open after %d consecutive errors",
			ErrNetwork, n)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d after %v", attempt, s.maxRetries, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("%w: %v", ErrNetwork, timeoutCtx.Err())
			}
		}

		result, err := s.client.Models.GenerateContent(
			timeoutCtx,
			s.model,
			genai.Text(prompt),
			genConfig,
		)

		if err == nil {
			s.consecutiveErrors.Store(0)
			text, vErr := validateResponse(result)
			if vErr != nil {
				return "", vErr
			}
			return text, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			s.consecutiveErrors.Add(1)
			return "", mapGeminiError(err)
		}
		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	s.consecutiveErrors.Add(1)
	return "", fmt.Errorf("max retries (%d) exceeded: %w", s.maxRetries, mapGeminiError(lastErr))
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.baseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.maxDelay {
		delay = s.maxDelay
	}
	jitter := time.Duration(float64(delay) * 0.25)
	return delay - jitter/2 + time.Duration(float64(jitter)*0.5)
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()
	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		case 400, 401, 403, 404:
			return false
		}
	}
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		case 429:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func validateResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: response is nil", ErrMalformedResponse)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrMalformedResponse)
	}
	if resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: candidate content is empty", ErrMalformedResponse)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: response has no text", ErrMalformedResponse)
	}
	return text, nil
}
