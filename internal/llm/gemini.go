package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"meal-recommender/internal/config"
	"meal-recommender/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// geminiClient is a client for the Google Gemini API.
type geminiClient struct {
	client *genai.Client
}

// GeminiClient bundles text generation with resource cleanup.
type GeminiClient interface {
	TextGenerator
	Closer
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{client: client}, nil
}

// GenerateContent sends a prompt to the Gemini model and returns the generated text.
func (c *geminiClient) GenerateContent(ctx context.Context, prompt string, params GenerationParams) (ContentResponse, error) {
	model := c.client.GenerativeModel(params.Model)
	model.SetTemperature(float32(params.Temperature))
	model.SetMaxOutputTokens(int32(params.MaxOutputTokens))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return ContentResponse{}, classifyGeminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ContentResponse{}, ErrEmptyResponse
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || string(text) == "" {
		return ContentResponse{}, ErrEmptyResponse
	}

	usage := shared.TokenUsage{Model: params.Model}
	if resp.UsageMetadata != nil {
		usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return ContentResponse{Content: string(text), Usage: usage}, nil
}

// Close closes the underlying Gemini client.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

func classifyGeminiError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return &QuotaError{RetryAfter: retryAfterHint(apiErr.Header), Err: err}
		}
	}
	return &TransportError{Err: err}
}

func retryAfterHint(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
