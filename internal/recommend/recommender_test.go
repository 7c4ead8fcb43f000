package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"meal-recommender/internal/llm"
	"meal-recommender/internal/profile"
)

// --- Mocks ---

type mockStore struct {
	records map[string]*profile.Record
}

func (m *mockStore) GetRecord(ctx context.Context, userID string) (*profile.Record, error) {
	rec, ok := m.records[userID]
	if !ok {
		return nil, fmt.Errorf("record for %s: %w", userID, profile.ErrNotFound)
	}
	return rec, nil
}

type mockGenerator struct {
	Response   string
	Err        error
	Calls      int
	LastPrompt string
	LastParams llm.GenerationParams
}

func (m *mockGenerator) GenerateContent(ctx context.Context, prompt string, params llm.GenerationParams) (llm.ContentResponse, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastParams = params
	if m.Err != nil {
		return llm.ContentResponse{}, m.Err
	}
	return llm.ContentResponse{Content: m.Response}, nil
}

const goodResponse = `Recipe Name: Paneer Tikka Bowl

Ingredients:
- paneer: 200 g
- basmati rice: 1 cup

Instructions:
1. Marinate the paneer.
2. Grill and serve over rice.

Nutrition:
- Calories: 520
- Protein: 28g
- Carbs: 60g
- Fat: 18g
- Fiber: 6g

Estimated Cost Per Serving: $4.20
`

func testOptions() Options {
	return Options{
		ExclusionWindow:     5,
		RepetitionThreshold: 0.2,
		PromptCharBudget:    4000,
		Params: llm.GenerationParams{
			Temperature:     0.9,
			MaxOutputTokens: 4096,
			Model:           "gemini-2.5-flash",
		},
	}
}

// --- Tests ---

func TestGenerate_Success(t *testing.T) {
	gen := &mockGenerator{Response: goodResponse}
	r := New(&mockStore{}, gen, testOptions())

	rec := validRecord()
	rec.MealHistory = []profile.HistoryEntry{
		entry("Mediterranean Bowl", "Mediterranean", 0),
	}

	m, meta, err := r.Generate(context.Background(), rec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if m.RecipeName != "Paneer Tikka Bowl" {
		t.Errorf("Expected 'Paneer Tikka Bowl', got '%s'", m.RecipeName)
	}
	if gen.Calls != 1 {
		t.Errorf("Expected exactly one model call, got %d", gen.Calls)
	}
	if meta.AgentName != "Recommender" {
		t.Errorf("Expected agent name 'Recommender', got '%s'", meta.AgentName)
	}
	if !strings.Contains(gen.LastPrompt, "Mediterranean Bowl") {
		t.Error("Expected the prompt to exclude the recent meal")
	}
	if gen.LastParams.Model != "gemini-2.5-flash" {
		t.Errorf("Expected configured model to be passed through, got '%s'", gen.LastParams.Model)
	}
}

func TestGenerate_ValidationSkipsModel(t *testing.T) {
	gen := &mockGenerator{Response: goodResponse}
	r := New(&mockStore{}, gen, testOptions())

	rec := validRecord()
	rec.DietaryRestrictions = nil

	_, _, err := r.Generate(context.Background(), rec)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if gen.Calls != 0 {
		t.Errorf("Expected zero model calls on validation failure, got %d", gen.Calls)
	}
}

func TestGenerate_BlankTagsSkipModel(t *testing.T) {
	gen := &mockGenerator{Response: goodResponse}
	r := New(&mockStore{}, gen, testOptions())

	rec := validRecord()
	rec.DietaryRestrictions = []string{"   "}

	_, _, err := r.Generate(context.Background(), rec)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	if vErr.Field != "dietary_restrictions" {
		t.Errorf("Expected field 'dietary_restrictions', got '%s'", vErr.Field)
	}
	if gen.Calls != 0 {
		t.Errorf("Expected zero model calls for a blank-only field, got %d", gen.Calls)
	}
}

func TestGenerateForUser_NotFound(t *testing.T) {
	gen := &mockGenerator{Response: goodResponse}
	r := New(&mockStore{records: map[string]*profile.Record{}}, gen, testOptions())

	_, _, err := r.GenerateForUser(context.Background(), "missing")

	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if gen.Calls != 0 {
		t.Errorf("Expected zero model calls for a missing record, got %d", gen.Calls)
	}
}

func TestGenerate_ModelErrorsPropagate(t *testing.T) {
	quota := &llm.QuotaError{Err: errors.New("rate limited")}
	gen := &mockGenerator{Err: quota}
	r := New(&mockStore{}, gen, testOptions())

	_, _, err := r.Generate(context.Background(), validRecord())

	var qErr *llm.QuotaError
	if !errors.As(err, &qErr) {
		t.Fatalf("Expected *llm.QuotaError to surface, got %v", err)
	}
	if gen.Calls != 1 {
		t.Errorf("Expected exactly one model call (no retries), got %d", gen.Calls)
	}
}

func TestGenerate_UnparsableResponse(t *testing.T) {
	gen := &mockGenerator{Response: "I'm sorry, I can't help with that."}
	r := New(&mockStore{}, gen, testOptions())

	_, _, err := r.Generate(context.Background(), validRecord())

	if err == nil {
		t.Fatal("Expected a parse failure")
	}
	if gen.Calls != 1 {
		t.Errorf("Expected exactly one model call, got %d", gen.Calls)
	}
}

func TestHistoryEntryFor(t *testing.T) {
	rec := validRecord()
	rec.PlanPreferences.CuisinePreferences = []string{"Thai"}

	gen := &mockGenerator{Response: goodResponse}
	r := New(&mockStore{}, gen, testOptions())

	m, _, err := r.Generate(context.Background(), rec)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	now := time.Now().UTC()
	e := HistoryEntryFor(rec, m, now)

	if e.MealID == "" {
		t.Error("Expected a generated meal ID")
	}
	if e.RecipeName != "Paneer Tikka Bowl" {
		t.Errorf("Expected recipe name carried over, got '%s'", e.RecipeName)
	}
	if !e.GeneratedAt.Equal(now) {
		t.Errorf("Expected GeneratedAt %v, got %v", now, e.GeneratedAt)
	}
	if e.IngredientsCount != 2 || e.InstructionCount != 2 {
		t.Errorf("Expected counts 2/2, got %d/%d", e.IngredientsCount, e.InstructionCount)
	}
}

func TestInferCuisine(t *testing.T) {
	rec := validRecord()
	rec.PlanPreferences.CuisinePreferences = []string{"Thai"}

	if got := inferCuisine(rec, "Thai Basil Fried Rice"); got != "Thai" {
		t.Errorf("Expected preference spelling 'Thai', got '%s'", got)
	}
	if got := inferCuisine(rec, "Mediterranean Mezze Platter"); got != "Mediterranean" {
		t.Errorf("Expected inferred 'Mediterranean', got '%s'", got)
	}
	if got := inferCuisine(rec, "Simple Grilled Cheese"); got != "" {
		t.Errorf("Expected empty cuisine, got '%s'", got)
	}
}
