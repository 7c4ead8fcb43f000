package profile

import (
	"strings"
	"time"
)

// Variety is the user's appetite for novelty across generated meals.
type Variety string

const (
	VarietyLow    Variety = "low"
	VarietyMedium Variety = "medium"
	VarietyHigh   Variety = "high"
)

// BudgetLevel is the user's per-serving spend preference.
type BudgetLevel string

const (
	BudgetLow      BudgetLevel = "low"
	BudgetModerate BudgetLevel = "moderate"
	BudgetHigh     BudgetLevel = "high"
)

// PlanPreferences holds the user's meal-plan settings.
type PlanPreferences struct {
	Length             int
	Variety            Variety
	CuisinePreferences []string
	MaxPrepMinutes     *int
	BudgetLevel        BudgetLevel
}

// HistoryEntry is a summary of one previously generated (or imported) meal.
type HistoryEntry struct {
	MealID           string
	RecipeName       string
	GeneratedAt      time.Time
	Rating           *float64
	Cuisine          string
	PrepTimeMinutes  *int
	IngredientsCount int
	InstructionCount int
}

// Record is a read-only snapshot of a user's preferences and meal history.
// MealHistory is ordered newest-first. The recommendation pipeline never
// mutates a Record; history updates go through Repository.AppendHistory.
type Record struct {
	UserID              string
	DietaryRestrictions []string
	NutritionGoals      []string
	FavoriteFoods       []string
	PlanPreferences     PlanPreferences
	MealHistory         []HistoryEntry
}

// Normalize applies the defaulting rules checked once at the store boundary:
// blank tags are dropped, the plan length is clamped to 1..7, and unknown
// enum values fall back to their defaults.
func (r *Record) Normalize() {
	r.DietaryRestrictions = cleanTags(r.DietaryRestrictions)
	r.NutritionGoals = cleanTags(r.NutritionGoals)
	r.FavoriteFoods = cleanTags(r.FavoriteFoods)
	r.PlanPreferences.CuisinePreferences = cleanTags(r.PlanPreferences.CuisinePreferences)

	if r.PlanPreferences.Length < 1 {
		r.PlanPreferences.Length = 5
	} else if r.PlanPreferences.Length > 7 {
		r.PlanPreferences.Length = 7
	}

	switch r.PlanPreferences.Variety {
	case VarietyLow, VarietyMedium, VarietyHigh:
	default:
		r.PlanPreferences.Variety = VarietyHigh
	}

	switch r.PlanPreferences.BudgetLevel {
	case BudgetLow, BudgetModerate, BudgetHigh:
	default:
		r.PlanPreferences.BudgetLevel = BudgetModerate
	}

	if pm := r.PlanPreferences.MaxPrepMinutes; pm != nil && *pm <= 0 {
		r.PlanPreferences.MaxPrepMinutes = nil
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
