package discovery

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/octobees/lead-discovery/internal/metrics"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 90 * time.Second

	emptyListPayload = "[]"
)

// generator is the subset of genai.Models used by the client.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiClient issues maps-grounded GenerateContent calls against the Gemini API.
type GeminiClient struct {
	models    generator
	model     string
	grounding bool
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures a GeminiClient.
type Option func(*GeminiClient)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *GeminiClient) {
		if m := strings.TrimSpace(model); m != "" {
			c.model = m
		}
	}
}

// WithGrounding toggles the Google Maps grounding tool.
func WithGrounding(enabled bool) Option {
	return func(c *GeminiClient) {
		c.grounding = enabled
	}
}

// WithTimeout bounds each backend call. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *GeminiClient) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *GeminiClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewGeminiClient builds a client for the Gemini API. A blank apiKey yields an
// unconfigured client rather than an error; no backend client is created for it.
func NewGeminiClient(ctx context.Context, apiKey string, opts ...Option) (*GeminiClient, error) {
	c := &GeminiClient{
		model:     DefaultModel,
		grounding: true,
		timeout:   DefaultTimeout,
		logger:    zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "discovery: create gemini client")
	}
	c.models = client.Models
	return c, nil
}

// Configured reports whether the client holds a backend connection.
func (c *GeminiClient) Configured() bool {
	return c != nil && c.models != nil
}

// Discover sends prompt as a single user turn and returns the raw response text.
// Structured output is not requested: response schemas cannot be combined with
// the maps grounding tool.
func (c *GeminiClient) Discover(ctx context.Context, prompt string) Outcome {
	if !c.Configured() {
		return Failed(FailureConfig, ErrMissingCredential)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, c.requestConfig())
	if err != nil {
		kind := classifyError(ctx, err)
		metrics.DiscoveryDuration.WithLabelValues(c.model, kind.String()).Observe(time.Since(start).Seconds())
		return Failed(kind, eris.Wrapf(err, "discovery: generate content (model: %s)", c.model))
	}

	text := ""
	if resp != nil {
		text = resp.Text()
	}
	if strings.TrimSpace(text) == "" {
		text = emptyListPayload
	}

	metrics.DiscoveryDuration.WithLabelValues(c.model, "ok").Observe(time.Since(start).Seconds())
	c.logger.Debug("discovery call completed",
		zap.String("model", c.model),
		zap.Bool("grounding", c.grounding),
		zap.Int("response_bytes", len(text)),
		zap.Duration("latency", time.Since(start)),
	)
	return Succeeded(text)
}

func (c *GeminiClient) requestConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if c.grounding {
		cfg.Tools = []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}}
	}
	return cfg
}

func classifyError(ctx context.Context, err error) Failure {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return FailureTimeout
	}
	if IsRateLimitError(err) {
		return FailureRateLimited
	}
	return FailureBackend
}

// IsRateLimitError checks if an error is a Gemini quota or rate limit error.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}

var _ Client = (*GeminiClient)(nil)
