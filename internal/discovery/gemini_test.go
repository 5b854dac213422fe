package discovery

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	resp     *genai.GenerateContentResponse
	err      error
	block    bool
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func newTestClient(gen generator, opts ...Option) *GeminiClient {
	c := &GeminiClient{
		models:    gen,
		model:     DefaultModel,
		grounding: true,
		timeout:   DefaultTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func TestNewGeminiClient_MissingCredential(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Configured() {
		t.Fatalf("expected unconfigured client without api key")
	}

	outcome := client.Discover(context.Background(), "prompt")
	if outcome.OK() || outcome.Failure != FailureConfig {
		t.Fatalf("expected configuration failure, got %+v", outcome)
	}
	if !errors.Is(outcome.Err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", outcome.Err)
	}
}

func TestGeminiClient_DiscoverSendsGroundedPrompt(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(`[{"name":"Cafe Lua"}]`)}
	client := newTestClient(gen, WithModel("gemini-test"))

	outcome := client.Discover(context.Background(), "find cafes")
	if !outcome.OK() {
		t.Fatalf("unexpected failure: %+v", outcome)
	}
	if outcome.Text != `[{"name":"Cafe Lua"}]` {
		t.Fatalf("unexpected text: %q", outcome.Text)
	}
	if gen.calls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", gen.calls)
	}
	if gen.model != "gemini-test" {
		t.Fatalf("expected model override, got %s", gen.model)
	}
	if len(gen.contents) != 1 || len(gen.contents[0].Parts) != 1 || gen.contents[0].Parts[0].Text != "find cafes" {
		t.Fatalf("unexpected contents: %+v", gen.contents)
	}
	if gen.contents[0].Role != "user" {
		t.Fatalf("expected user role, got %s", gen.contents[0].Role)
	}
	if gen.config == nil || len(gen.config.Tools) != 1 || gen.config.Tools[0].GoogleMaps == nil {
		t.Fatalf("expected google maps grounding tool, got %+v", gen.config)
	}
	if gen.config.ResponseSchema != nil || gen.config.ResponseMIMEType != "" {
		t.Fatalf("expected no structured output config")
	}
}

func TestGeminiClient_GroundingDisabled(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse("[]")}
	client := newTestClient(gen, WithGrounding(false))

	client.Discover(context.Background(), "prompt")
	if gen.config == nil || len(gen.config.Tools) != 0 {
		t.Fatalf("expected no tools when grounding disabled, got %+v", gen.config)
	}
}

func TestGeminiClient_EmptyResponseYieldsEmptyList(t *testing.T) {
	tests := map[string]*genai.GenerateContentResponse{
		"nil response":  nil,
		"no candidates": {},
		"blank text":    textResponse("  \n"),
	}

	for name, resp := range tests {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(&fakeGenerator{resp: resp})
			outcome := client.Discover(context.Background(), "prompt")
			if !outcome.OK() || outcome.Text != "[]" {
				t.Fatalf("expected empty list sentinel, got %+v", outcome)
			}
		})
	}
}

func TestGeminiClient_BackendErrors(t *testing.T) {
	t.Run("generic error", func(t *testing.T) {
		client := newTestClient(&fakeGenerator{err: errors.New("connection reset")})
		outcome := client.Discover(context.Background(), "prompt")
		if outcome.OK() || outcome.Failure != FailureBackend {
			t.Fatalf("expected backend failure, got %+v", outcome)
		}
		if !strings.Contains(outcome.Err.Error(), "connection reset") {
			t.Fatalf("expected wrapped cause, got %v", outcome.Err)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		apiErr := genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"}
		client := newTestClient(&fakeGenerator{err: apiErr})
		outcome := client.Discover(context.Background(), "prompt")
		if outcome.Failure != FailureRateLimited {
			t.Fatalf("expected rate limited failure, got %s", outcome.Failure)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		client := newTestClient(&fakeGenerator{block: true}, WithTimeout(10*time.Millisecond))
		outcome := client.Discover(context.Background(), "prompt")
		if outcome.Failure != FailureTimeout {
			t.Fatalf("expected timeout failure, got %s (%v)", outcome.Failure, outcome.Err)
		}
		if !errors.Is(outcome.Err, context.DeadlineExceeded) {
			t.Fatalf("expected deadline exceeded cause, got %v", outcome.Err)
		}
	})
}

func TestIsRateLimitError(t *testing.T) {
	if IsRateLimitError(nil) {
		t.Fatalf("nil error is not a rate limit error")
	}
	if !IsRateLimitError(errors.New("Error 429, Status: RESOURCE_EXHAUSTED")) {
		t.Fatalf("expected 429 message to be detected")
	}
	if IsRateLimitError(errors.New("permission denied")) {
		t.Fatalf("unexpected rate limit classification")
	}
}

func TestFailedDefaultsToBackend(t *testing.T) {
	outcome := Failed(FailureNone, errors.New("boom"))
	if outcome.OK() || outcome.Failure != FailureBackend {
		t.Fatalf("expected backend failure, got %+v", outcome)
	}
	if FailureTimeout.String() != "timeout" || Failure(99).String() != "unknown" {
		t.Fatalf("unexpected failure names")
	}
}
