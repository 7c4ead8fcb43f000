package llm

import (
	"context"

	"meal-recommender/internal/shared"
)

// GenerationParams are the per-call knobs forwarded to the model.
type GenerationParams struct {
	Temperature     float64
	MaxOutputTokens int
	Model           string
}

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
// Implementations make exactly one outbound call per invocation and never
// retry; retry policy belongs to the caller.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, params GenerationParams) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}
