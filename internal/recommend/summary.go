package recommend

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"meal-recommender/internal/meal"
	"meal-recommender/internal/profile"
)

// knownCuisines are the cuisine labels inferred from recipe names when the
// user has no matching preference configured.
var knownCuisines = []string{
	"mediterranean", "thai", "indian", "mexican", "italian",
	"japanese", "chinese", "korean", "greek", "french",
	"vietnamese", "moroccan", "spanish",
}

// HistoryEntryFor builds the history append instruction for a generated meal.
// The cuisine is inferred from the recipe name, preferring the user's own
// preference spellings; no match leaves it empty.
func HistoryEntryFor(rec *profile.Record, m *meal.Meal, generatedAt time.Time) profile.HistoryEntry {
	return profile.HistoryEntry{
		MealID:           uuid.NewString(),
		RecipeName:       m.RecipeName,
		GeneratedAt:      generatedAt,
		Cuisine:          inferCuisine(rec, m.RecipeName),
		IngredientsCount: len(m.Ingredients),
		InstructionCount: len(m.Instructions),
	}
}

func inferCuisine(rec *profile.Record, recipeName string) string {
	name := strings.ToLower(recipeName)
	for _, pref := range rec.PlanPreferences.CuisinePreferences {
		if strings.Contains(name, strings.ToLower(strings.TrimSpace(pref))) {
			return strings.TrimSpace(pref)
		}
	}
	for _, cuisine := range knownCuisines {
		if strings.Contains(name, cuisine) {
			return strings.ToUpper(cuisine[:1]) + cuisine[1:]
		}
	}
	return ""
}
