package acceptance_tests

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meal-recommender/internal/app"
	"meal-recommender/internal/clipper"
	"meal-recommender/internal/config"
	"meal-recommender/internal/database"
	"meal-recommender/internal/llm"
	"meal-recommender/internal/metrics"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/recommend"
	"meal-recommender/internal/shared"
	"meal-recommender/internal/storage"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateContentCalls int
	lastPrompt           string
}

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string, params llm.GenerationParams) (llm.ContentResponse, error) {
	m.generateContentCalls++
	m.lastPrompt = prompt
	return llm.ContentResponse{
		Content: `Recipe Name: Mango Chickpea Curry

Ingredients:
- chickpeas: 1 can
- mango: 1 whole
- coconut milk: 200 ml

Instructions:
1. Simmer the coconut milk with spices.
2. Add chickpeas and diced mango.
3. Cook for 15 minutes and serve.

Nutrition:
- Calories: 480
- Protein: 14g
- Carbs: 62g
- Fat: 20g
- Fiber: 11g

Estimated Cost Per Serving: $2.80
`,
		Usage: shared.TokenUsage{PromptTokens: 200, CompletionTokens: 150, TotalTokens: 350, Model: params.Model},
	}, nil
}

func (m *mockLLMClient) Close() error {
	return nil
}

// hangingLLMClient blocks until its context is cancelled, standing in for a
// provider that never answers.
type hangingLLMClient struct {
	generateContentCalls int
}

func (m *hangingLLMClient) GenerateContent(ctx context.Context, prompt string, params llm.GenerationParams) (llm.ContentResponse, error) {
	m.generateContentCalls++
	<-ctx.Done()
	return llm.ContentResponse{}, ctx.Err()
}

func newTestApp(t *testing.T, gen llm.TextGenerator) (*app.App, *profile.Repository, *metrics.Store, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	db, err := database.NewDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Provider:            config.ProviderGemini,
		ModelName:           "test-model",
		ExclusionWindow:     5,
		HistoryWindow:       20,
		PromptCharBudget:    4000,
		RepetitionThreshold: 0.2,
		Temperature:         0.9,
		MaxOutputTokens:     4096,
		RequestTimeout:      30 * time.Second,
	}

	profileRepo := profile.NewRepository(db.SQL, cfg.HistoryWindow)
	metricsStore := metrics.NewStore(db.SQL)

	mealArchive, err := storage.NewMealArchive(filepath.Join(dir, "meals"))
	if err != nil {
		t.Fatalf("Failed to initialize archive: %v", err)
	}

	params := llm.GenerationParams{
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Model:           cfg.ModelName,
	}
	recommender := recommend.New(profileRepo, gen, recommend.Options{
		ExclusionWindow:     cfg.ExclusionWindow,
		RepetitionThreshold: cfg.RepetitionThreshold,
		PromptCharBudget:    cfg.PromptCharBudget,
		Params:              params,
	})
	mealClipper := clipper.NewClipper(profileRepo, gen, params)

	return app.NewApp(recommender, profileRepo, metricsStore, mealArchive, mealClipper, cfg, db), profileRepo, metricsStore, cfg
}

func TestGenerateMeal_EndToEnd(t *testing.T) {
	gen := &mockLLMClient{}
	application, repo, metricsStore, _ := newTestApp(t, gen)
	ctx := context.Background()

	if err := application.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	before, err := repo.GetRecord(ctx, "USER_001")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	historyBefore := len(before.MealHistory)

	m, err := application.GenerateMeal(ctx, "USER_001")
	if err != nil {
		t.Fatalf("GenerateMeal failed: %v", err)
	}

	if m.RecipeName != "Mango Chickpea Curry" {
		t.Errorf("Expected 'Mango Chickpea Curry', got '%s'", m.RecipeName)
	}
	if gen.generateContentCalls != 1 {
		t.Errorf("Expected exactly one LLM call, got %d", gen.generateContentCalls)
	}

	// The prompt carries the user's restrictions and recent exclusions.
	if !strings.Contains(gen.lastPrompt, "vegetarian") {
		t.Error("Expected dietary restrictions in the prompt")
	}
	if !strings.Contains(gen.lastPrompt, "Thai-Inspired Tofu Stir-Fry with Brown Rice") {
		t.Error("Expected recent meals to be excluded in the prompt")
	}

	// History grew by one and the generated meal is newest.
	after, err := repo.GetRecord(ctx, "USER_001")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if len(after.MealHistory) != historyBefore+1 {
		t.Fatalf("Expected history to grow by 1, got %d -> %d", historyBefore, len(after.MealHistory))
	}
	newest := after.MealHistory[0]
	if newest.RecipeName != "Mango Chickpea Curry" {
		t.Errorf("Expected newest history entry to be the generated meal, got '%s'", newest.RecipeName)
	}
	if newest.IngredientsCount != 3 || newest.InstructionCount != 3 {
		t.Errorf("Expected counts 3/3, got %d/%d", newest.IngredientsCount, newest.InstructionCount)
	}

	// The full meal document round-trips from the store.
	doc, err := repo.GetMealJSON(ctx, newest.MealID)
	if err != nil {
		t.Fatalf("GetMealJSON failed: %v", err)
	}
	var stored map[string]interface{}
	if err := json.Unmarshal(doc, &stored); err != nil {
		t.Fatalf("Stored meal is not valid JSON: %v", err)
	}
	if stored["recipe_name"] != "Mango Chickpea Curry" {
		t.Errorf("Unexpected stored meal: %v", stored["recipe_name"])
	}

	// Token usage was recorded.
	usage, err := metricsStore.GetDailyUsage(1)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 || usage[0].TotalExecution != 1 {
		t.Errorf("Expected one recorded execution, got %+v", usage)
	}
	if usage[0].TotalPrompt != 200 || usage[0].TotalCompletion != 150 {
		t.Errorf("Expected usage 200/150, got %+v", usage[0])
	}
}

func TestGenerateMeal_UnknownUser(t *testing.T) {
	gen := &mockLLMClient{}
	application, _, _, _ := newTestApp(t, gen)

	_, err := application.GenerateMeal(context.Background(), "nobody")
	if err == nil {
		t.Fatal("Expected error for unknown user")
	}
	if gen.generateContentCalls != 0 {
		t.Errorf("Expected zero LLM calls, got %d", gen.generateContentCalls)
	}
}

func TestGenerateMeal_TimesOutOnHungModel(t *testing.T) {
	gen := &hangingLLMClient{}
	application, repo, _, cfg := newTestApp(t, gen)
	cfg.RequestTimeout = 50 * time.Millisecond
	ctx := context.Background()

	if err := application.Seed(ctx); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	before, err := repo.GetRecord(ctx, "USER_001")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}

	_, err = application.GenerateMeal(ctx, "USER_001")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected context.DeadlineExceeded, got %v", err)
	}
	if gen.generateContentCalls != 1 {
		t.Errorf("Expected exactly one model call, got %d", gen.generateContentCalls)
	}

	// No partial meal: history is unchanged.
	after, err := repo.GetRecord(ctx, "USER_001")
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if len(after.MealHistory) != len(before.MealHistory) {
		t.Errorf("Expected history unchanged on timeout, got %d -> %d",
			len(before.MealHistory), len(after.MealHistory))
	}
}
