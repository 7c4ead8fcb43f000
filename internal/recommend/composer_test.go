package recommend

import (
	"errors"
	"strings"
	"testing"

	"meal-recommender/internal/profile"
)

func validRecord() *profile.Record {
	return &profile.Record{
		UserID:              "u1",
		DietaryRestrictions: []string{"vegetarian", "gluten-free"},
		NutritionGoals:      []string{"high protein"},
		FavoriteFoods:       []string{"chickpeas", "spinach"},
		PlanPreferences: profile.PlanPreferences{
			Variety:     profile.VarietyHigh,
			BudgetLevel: profile.BudgetModerate,
		},
	}
}

func TestCompose_ContainsAllExclusionsVerbatim(t *testing.T) {
	rec := validRecord()
	ctx := Context{
		Assessment: AssessNewCategories,
		Exclusions: []string{"Mediterranean Bowl", "Thai Tofu Stir-Fry", "Lentil Soup"},
	}

	prompt, err := Compose(rec, ctx, ComposerOptions{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	for _, name := range ctx.Exclusions {
		if !strings.Contains(prompt, name) {
			t.Errorf("Expected prompt to contain exclusion '%s'", name)
		}
	}
	if !strings.Contains(prompt, "Do not repeat") {
		t.Error("Expected an explicit do-not-repeat clause")
	}
}

func TestCompose_SectionOrder(t *testing.T) {
	rec := validRecord()
	ctx := Context{
		Assessment:  AssessNewCategories,
		Exclusions:  []string{"Mediterranean Bowl"},
		GapCuisines: []string{"Indian"},
	}

	prompt, err := Compose(rec, ctx, ComposerOptions{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	markers := []string{
		"culinary assistant",
		"Dietary restrictions",
		"Nutrition goals",
		"Favorite foods",
		"Do not repeat",
		"Variety guidance",
		"Format your response",
	}
	last := -1
	for _, marker := range markers {
		idx := strings.Index(prompt, marker)
		if idx < 0 {
			t.Fatalf("Expected prompt to contain '%s'", marker)
		}
		if idx < last {
			t.Errorf("Section '%s' out of order", marker)
		}
		last = idx
	}
}

func TestCompose_OutputFormatContract(t *testing.T) {
	prompt, err := Compose(validRecord(), Context{Assessment: AssessIntroduceVariety}, ComposerOptions{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	for _, header := range []string{
		"Recipe Name:", "Ingredients:", "Instructions:", "Nutrition:",
		"Calories:", "Protein:", "Carbs:", "Fat:", "Fiber:",
		"Estimated Cost Per Serving:",
	} {
		if !strings.Contains(prompt, header) {
			t.Errorf("Expected output format to mandate '%s'", header)
		}
	}
}

func TestCompose_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*profile.Record)
		field  string
	}{
		{"restrictions", func(r *profile.Record) { r.DietaryRestrictions = nil }, "dietary_restrictions"},
		{"goals", func(r *profile.Record) { r.NutritionGoals = nil }, "nutrition_goals"},
		{"favorites", func(r *profile.Record) { r.FavoriteFoods = nil }, "favorite_foods"},
		{"blank restrictions", func(r *profile.Record) { r.DietaryRestrictions = []string{"   ", "\t"} }, "dietary_restrictions"},
		{"blank goals", func(r *profile.Record) { r.NutritionGoals = []string{""} }, "nutrition_goals"},
		{"blank favorites", func(r *profile.Record) { r.FavoriteFoods = []string{" ", ""} }, "favorite_foods"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(rec)

			_, err := Compose(rec, Context{Assessment: AssessIntroduceVariety}, ComposerOptions{})

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("Expected field '%s', got '%s'", tc.field, vErr.Field)
			}
		})
	}
}

func TestCompose_DropsBlankTagsFromPrompt(t *testing.T) {
	rec := validRecord()
	rec.FavoriteFoods = []string{"chickpeas", "   ", "spinach"}

	prompt, err := Compose(rec, Context{Assessment: AssessIntroduceVariety}, ComposerOptions{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if !strings.Contains(prompt, "chickpeas, spinach") {
		t.Error("Expected blank tags to be dropped from the rendered list")
	}
}

func TestCompose_BudgetDropsOldestExclusionsFirst(t *testing.T) {
	rec := validRecord()
	ctx := Context{
		Assessment: AssessNewCategories,
		Exclusions: []string{
			"Newest Meal",
			"Second Meal",
			strings.Repeat("Very Old Meal With An Extremely Long Name ", 20),
		},
	}

	unbounded, err := Compose(rec, ctx, ComposerOptions{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	budget := len(unbounded) - 50
	prompt, err := Compose(rec, ctx, ComposerOptions{CharBudget: budget})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	if len(prompt) > budget {
		t.Errorf("Prompt length %d exceeds budget %d", len(prompt), budget)
	}
	if !strings.Contains(prompt, "Newest Meal") {
		t.Error("Expected the newest exclusion to survive truncation")
	}
	if strings.Contains(prompt, "Very Old Meal") {
		t.Error("Expected the oldest exclusion to be dropped first")
	}
}

func TestCompose_Deterministic(t *testing.T) {
	rec := validRecord()
	ctx := Context{
		Assessment:  AssessBalance,
		Exclusions:  []string{"Meal A", "Meal B"},
		GapCuisines: []string{"Indian", "Mexican"},
	}

	a, err := Compose(rec, ctx, ComposerOptions{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	b, err := Compose(rec, ctx, ComposerOptions{})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if a != b {
		t.Error("Expected identical prompts for identical inputs")
	}
}
