// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/bobmcallan/marketlens/internal/common"
	"github.com/bobmcallan/marketlens/internal/interfaces"
	"github.com/bobmcallan/marketlens/internal/models"
)

const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultTemperature     = 0.4
	DefaultMaxOutputTokens = 8192
	DefaultRateLimit       = 2 // requests per second
)

// UpstreamError wraps a failure from the generation endpoint. The upstream
// message is carried verbatim — no retry or rewriting happens at this
// layer; the caller decides how to surface it.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream AI error: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Client implements the AIClient interface
type Client struct {
	client          *genai.Client
	model           string
	temperature     float64
	maxOutputTokens int
	limiter         *rate.Limiter
	logger          *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) {
		c.temperature = temperature
	}
}

// WithMaxOutputTokens sets the output token cap
func WithMaxOutputTokens(maxTokens int) ClientOption {
	return func(c *Client) {
		c.maxOutputTokens = maxTokens
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:          genaiClient,
		model:           DefaultModel,
		temperature:     DefaultTemperature,
		maxOutputTokens: DefaultMaxOutputTokens,
		limiter:         rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:          common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Close closes the client
func (c *Client) Close() error {
	// The genai client doesn't have a Close method
	return nil
}

// Generate sends one prompt to the model. enableSearch attaches the Google
// Search grounding tool. Exactly one outbound call: any SDK error or
// non-success response is returned as an UpstreamError without retrying.
func (c *Client) Generate(ctx context.Context, systemInstruction, userPrompt string, enableSearch bool) (*models.RawModelResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	c.logger.Debug().
		Str("model", c.model).
		Bool("search", enableSearch).
		Int("prompt_len", len(userPrompt)).
		Msg("Generating content")

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.temperature)),
		MaxOutputTokens: int32(c.maxOutputTokens),
	}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}
	if enableSearch {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	contents := genai.Text(userPrompt)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error(), Err: err}
	}

	text, err := extractTextFromResponse(result)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error(), Err: err}
	}

	return &models.RawModelResponse{
		Text:      text,
		Citations: extractCitations(result),
	}, nil
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// extractCitations collects grounding sources from the first candidate,
// deduplicated by URI with insertion order preserved.
func extractCitations(result *genai.GenerateContentResponse) []models.Citation {
	if len(result.Candidates) == 0 || result.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	seen := make(map[string]bool)
	var citations []models.Citation
	for _, chunk := range result.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		if seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		citations = append(citations, models.Citation{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return citations
}

// Ensure Client implements AIClient
var _ interfaces.AIClient = (*Client)(nil)
