package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"meal-recommender/internal/llm"
	"meal-recommender/internal/profile"
)

// HistoryAppender records an eaten meal. Satisfied by profile.Repository.
type HistoryAppender interface {
	AppendHistory(ctx context.Context, userID string, entry profile.HistoryEntry) error
}

// Clipper turns a recipe URL into a meal history entry so externally eaten
// meals count toward variety analysis.
type Clipper struct {
	store   HistoryAppender
	textGen llm.TextGenerator
	params  llm.GenerationParams
}

// ExtractedMeal represents the data structured by the AI.
type ExtractedMeal struct {
	MealName        string `json:"meal_name"`
	Cuisine         string `json:"cuisine"`
	PrepTimeMinutes int    `json:"prep_time_minutes"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(store HistoryAppender, textGen llm.TextGenerator, params llm.GenerationParams) *Clipper {
	return &Clipper{
		store:   store,
		textGen: textGen,
		params:  params,
	}
}

// ClipURL fetches the URL, extracts the meal using AI, and appends it to the
// user's history.
func (c *Clipper) ClipURL(ctx context.Context, userID, url string) (*ExtractedMeal, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Identify the meal described in the following page content.
Return the result strictly as a JSON object with this structure:
{
  "meal_name": "Meal Name",
  "cuisine": "e.g. Thai, Mediterranean, or empty if unclear",
  "prep_time_minutes": 30
}

Page Content:
%s
`, content)

	resp, err := c.textGen.GenerateContent(ctx, prompt, c.params)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted ExtractedMeal
	if err := json.Unmarshal([]byte(stripCodeFence(resp.Content)), &extracted); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, resp.Content)
	}
	if strings.TrimSpace(extracted.MealName) == "" {
		return nil, fmt.Errorf("no meal found at %s", url)
	}

	entry := profile.HistoryEntry{
		MealID:      uuid.NewString(),
		RecipeName:  extracted.MealName,
		GeneratedAt: time.Now().UTC(),
		Cuisine:     extracted.Cuisine,
	}
	if extracted.PrepTimeMinutes > 0 {
		prep := extracted.PrepTimeMinutes
		entry.PrepTimeMinutes = &prep
	}

	if err := c.store.AppendHistory(ctx, userID, entry); err != nil {
		return nil, fmt.Errorf("failed to record clipped meal: %w", err)
	}

	return &extracted, nil
}

func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}

// stripCodeFence removes a markdown code fence wrapper if the model added one.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
