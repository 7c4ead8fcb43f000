package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SeedDemoUsers inserts two demo profiles with realistic meal history so the
// pipeline can be exercised before any real users exist. Existing rows with
// the same user ids are overwritten; history entries are appended once per
// recipe name that is not already present.
func (r *Repository) SeedDemoUsers(ctx context.Context) error {
	for _, demo := range demoUsers() {
		if err := r.SaveRecord(ctx, &demo.record); err != nil {
			return fmt.Errorf("failed to seed user %q: %w", demo.record.UserID, err)
		}

		existing, err := r.GetRecord(ctx, demo.record.UserID)
		if err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(existing.MealHistory))
		for _, e := range existing.MealHistory {
			seen[e.RecipeName] = struct{}{}
		}

		base := time.Now().UTC().AddDate(0, 0, -len(demo.history))
		for i, h := range demo.history {
			if _, ok := seen[h.name]; ok {
				continue
			}
			entry := HistoryEntry{
				MealID:           uuid.NewString(),
				RecipeName:       h.name,
				GeneratedAt:      base.AddDate(0, 0, i),
				Cuisine:          h.cuisine,
				IngredientsCount: h.ingredients,
				InstructionCount: h.instructions,
			}
			if err := r.AppendHistory(ctx, demo.record.UserID, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

type demoHistory struct {
	name         string
	cuisine      string
	ingredients  int
	instructions int
}

type demoUser struct {
	record  Record
	history []demoHistory
}

func demoUsers() []demoUser {
	return []demoUser{
		{
			record: Record{
				UserID:              "USER_001",
				DietaryRestrictions: []string{"vegetarian", "gluten-free", "nut-free"},
				NutritionGoals:      []string{"high protein", "weight loss", "balanced macros"},
				FavoriteFoods:       []string{"Mediterranean cuisine", "tofu-based dishes", "quinoa", "Asian fusion"},
				PlanPreferences: PlanPreferences{
					Length:             5,
					Variety:            VarietyHigh,
					CuisinePreferences: []string{"Mediterranean", "Thai", "Indian"},
					BudgetLevel:        BudgetModerate,
				},
			},
			history: []demoHistory{
				{name: "Mediterranean Tofu Kofta Power Bowls with Lemon-Herb Quinoa", cuisine: "Mediterranean", ingredients: 14, instructions: 8},
				{name: "Aegean Spiced Tofu & Quinoa Harvest Bowl", cuisine: "Mediterranean", ingredients: 12, instructions: 7},
				{name: "Lemon-Herb Crusted Tofu with Mediterranean Quinoa Pilaf", cuisine: "Mediterranean", ingredients: 13, instructions: 9},
				{name: "Roasted Vegetable & Quinoa Buddha Bowl with Tahini Dressing", cuisine: "Mediterranean", ingredients: 11, instructions: 6},
				{name: "Thai-Inspired Tofu Stir-Fry with Brown Rice", cuisine: "Thai", ingredients: 10, instructions: 6},
			},
		},
		{
			record: Record{
				UserID:              "USER_002",
				DietaryRestrictions: []string{"vegan", "gluten-free", "soy-free"},
				NutritionGoals:      []string{"low carb", "high fiber", "muscle building"},
				FavoriteFoods:       []string{"Indian cuisine", "legumes", "cruciferous vegetables", "nuts"},
				PlanPreferences: PlanPreferences{
					Length:             7,
					Variety:            VarietyMedium,
					CuisinePreferences: []string{"Indian", "Mexican"},
					BudgetLevel:        BudgetLow,
				},
			},
			history: []demoHistory{
				{name: "Chickpea Tikka Masala with Cauliflower Rice", cuisine: "Indian", ingredients: 12, instructions: 7},
				{name: "Spiced Lentil & Vegetable Curry", cuisine: "Indian", ingredients: 11, instructions: 6},
				{name: "Roasted Chickpea & Kale Salad with Tahini Vinaigrette", cuisine: "", ingredients: 9, instructions: 5},
			},
		},
	}
}
