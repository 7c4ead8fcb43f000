package recommend

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"meal-recommender/internal/profile"
)

//go:embed meal_prompt.md
var mealPrompt string

// ComposerOptions tunes prompt assembly.
type ComposerOptions struct {
	// CharBudget is the maximum prompt length in characters. Zero means
	// unbounded.
	CharBudget int
}

type promptData struct {
	DietaryRestrictions []string
	NutritionGoals      []string
	FavoriteFoods       []string
	MaxPrepMinutes      int
	BudgetLevel         string
	Exclusions          []string
	Assessment          Assessment
	GapCuisines         []string
	HighRepetition      bool
}

// Compose renders the generation prompt for a record and its derived context.
// Deterministic for a given input. Records whose restrictions, goals or
// favorites are empty, or hold only blank tags, fail with ValidationError
// before anything is rendered.
//
// When the rendered prompt exceeds the character budget, the oldest exclusion
// is dropped and the prompt re-rendered until it fits or no exclusions
// remain. Dropping oldest first keeps the most recent meals excluded, which
// matter most for repetition avoidance.
func Compose(rec *profile.Record, ctx Context, opts ComposerOptions) (string, error) {
	// Records loaded through the repository arrive normalized, but Compose
	// also accepts records built in memory, so blank tags are dropped here
	// before the emptiness checks.
	restrictions := withoutBlankTags(rec.DietaryRestrictions)
	goals := withoutBlankTags(rec.NutritionGoals)
	favorites := withoutBlankTags(rec.FavoriteFoods)

	if len(restrictions) == 0 {
		return "", &ValidationError{Field: "dietary_restrictions"}
	}
	if len(goals) == 0 {
		return "", &ValidationError{Field: "nutrition_goals"}
	}
	if len(favorites) == 0 {
		return "", &ValidationError{Field: "favorite_foods"}
	}

	data := promptData{
		DietaryRestrictions: restrictions,
		NutritionGoals:      goals,
		FavoriteFoods:       favorites,
		BudgetLevel:         string(rec.PlanPreferences.BudgetLevel),
		Exclusions:          ctx.Exclusions,
		Assessment:          ctx.Assessment,
		GapCuisines:         ctx.GapCuisines,
		HighRepetition:      ctx.HighRepetition,
	}
	if rec.PlanPreferences.MaxPrepMinutes != nil {
		data.MaxPrepMinutes = *rec.PlanPreferences.MaxPrepMinutes
	}

	for {
		prompt, err := buildMealPrompt(data)
		if err != nil {
			return "", err
		}
		if opts.CharBudget <= 0 || len(prompt) <= opts.CharBudget || len(data.Exclusions) == 0 {
			return prompt, nil
		}
		// Exclusions are in recency order, so the oldest is last.
		data.Exclusions = data.Exclusions[:len(data.Exclusions)-1]
	}
}

func withoutBlankTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func buildMealPrompt(data promptData) (string, error) {
	tmpl, err := template.New("Meal").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(mealPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
