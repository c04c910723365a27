package service

import (
	"context"
	"errors"
)

// Model client failure taxonomy. Callers match with errors.Is; the
// pipeline treats all of them as per-candidate failures and the agent
// surfaces them directly to the user.
var (
	ErrAuth              = errors.New("model API authentication failed")
	ErrQuotaExceeded     = errors.New("model API quota exceeded")
	ErrNetwork           = errors.New("model API network error")
	ErrMalformedResponse = errors.New("malformed model response")
)

// LLMClient is the hosted text-generation API. Generate returns free
// text; GenerateFacts requests the extraction-pass JSON document
// (providers enforce this differently: Gemini via a response schema,
// OpenRouter via prompt instructions).
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateFacts(ctx context.Context, prompt string) (string, error)
}
