package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/genai"
)

func testGeminiService() *GeminiService {
	return &GeminiService{
		model:             "test-model",
		maxRetries:        3,
		baseDelay:         time.Second,
		maxDelay:          90 * time.Second,
		requestTimeout:    90 * time.Second,
		circuitBreakerMax: 5,
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	s := testGeminiService()
	s.consecutiveErrors.Store(5)

	// The breaker must trip before any client call is attempted; the
	// service here has no client at all.
	_, err := s.generate(context.Background(), "prompt", nil)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("err = %v, want ErrNetwork from the open breaker", err)
	}
}

func TestGenerateEmptyPrompt(t *testing.T) {
	s := testGeminiService()
	if _, err := s.generate(context.Background(), "   ", nil); err == nil {
		t.Error("empty prompt accepted")
	}
}

func TestCalculateBackoff(t *testing.T) {
	s := testGeminiService()
	prev := time.Duration(0)
	for attempt := 1; attempt <= 4; attempt++ {
		d := s.calculateBackoff(attempt)
		if d <= prev {
			t.Errorf("backoff not increasing: attempt %d = %v, prev %v", attempt, d, prev)
		}
		if d > s.maxDelay {
			t.Errorf("backoff %v exceeds max %v", d, s.maxDelay)
		}
		prev = d
	}
}

func TestMapGeminiError(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{401, ErrAuth},
		{403, ErrAuth},
		{429, ErrQuotaExceeded},
		{500, ErrNetwork},
	}
	for _, tc := range cases {
		err := mapGeminiError(&genai.APIError{Code: tc.code})
		if !errors.Is(err, tc.want) {
			t.Errorf("mapGeminiError(code=%d) = %v, want %v", tc.code, err, tc.want)
		}
	}
	if !errors.Is(mapGeminiError(errors.New("dns failure")), ErrNetwork) {
		t.Error("plain error should map to ErrNetwork")
	}
}

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &genai.APIError{Code: 429}, true},
		{"server error", &genai.APIError{Code: 503}, true},
		{"bad request", &genai.APIError{Code: 400}, false},
		{"unauthorized", &genai.APIError{Code: 401}, false},
		{"context canceled", context.Canceled, false},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isRetryableError(tc.err); got != tc.want {
				t.Errorf("isRetryableError = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidateResponse(t *testing.T) {
	if _, err := validateResponse(nil); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("nil response: %v", err)
	}
	if _, err := validateResponse(&genai.GenerateContentResponse{}); !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("no candidates: %v", err)
	}

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "hello"}}}},
		},
	}
	text, err := validateResponse(resp)
	if err != nil || text != "hello" {
		t.Errorf("text = %q, err = %v", text, err)
	}
}
