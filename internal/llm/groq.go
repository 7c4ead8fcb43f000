package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"meal-recommender/internal/config"
	"meal-recommender/internal/shared"
)

const defaultGroqAPIURL = "https://api.groq.com/openai/v1/chat/completions"

// groqClient is a client for the Groq OpenAI-compatible API.
type groqClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewGroqClient creates a new Groq API client.
func NewGroqClient(cfg *config.Config) TextGenerator {
	return &groqClient{
		apiKey: cfg.GroqAPIKey,
		apiURL: defaultGroqAPIURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GenerateContent sends a prompt to the Groq model and returns the generated text.
func (c *groqClient) GenerateContent(ctx context.Context, prompt string, params GenerationParams) (ContentResponse, error) {
	reqBody := map[string]interface{}{
		"model": params.Model,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": params.Temperature,
		"max_tokens":  params.MaxOutputTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return ContentResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ContentResponse{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return ContentResponse{}, &QuotaError{
			RetryAfter: retryAfterHint(resp.Header),
			Err:        fmt.Errorf("groq api error: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		}
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return ContentResponse{}, &TransportError{
			Err: fmt.Errorf("groq api error: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var groqResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage struct {
			PromptTokens     int `json:"prompt_tokens"`
			CompletionTokens int `json:"completion_tokens"`
			TotalTokens      int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&groqResp); err != nil {
		return ContentResponse{}, &TransportError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(groqResp.Choices) == 0 || groqResp.Choices[0].Message.Content == "" {
		return ContentResponse{}, ErrEmptyResponse
	}

	return ContentResponse{
		Content: groqResp.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     groqResp.Usage.PromptTokens,
			CompletionTokens: groqResp.Usage.CompletionTokens,
			TotalTokens:      groqResp.Usage.TotalTokens,
			Model:            params.Model,
		},
	}, nil
}
