package storage

import (
	"testing"

	"meal-recommender/internal/meal"
)

func TestMealArchive_SaveLoadList(t *testing.T) {
	archive, err := NewMealArchive(t.TempDir())
	if err != nil {
		t.Fatalf("NewMealArchive failed: %v", err)
	}

	m := &meal.Meal{
		RecipeName:              "Spiced Chickpea Bowl",
		Ingredients:             []meal.Ingredient{{Item: "chickpeas", Quantity: "1", Unit: "cup"}},
		Instructions:            []string{"Cook the chickpeas."},
		EstimatedCostPerServing: meal.KnownMetric(3.5),
	}
	m.Nutrition.Calories = meal.KnownMetric(450)

	if err := archive.Save("u1", "meal-1", m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := archive.Save("u1", "meal-2", m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := archive.Load("u1", "meal-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.RecipeName != m.RecipeName {
		t.Errorf("Expected '%s', got '%s'", m.RecipeName, got.RecipeName)
	}
	if !got.Nutrition.Calories.Known || got.Nutrition.Calories.Value != 450 {
		t.Errorf("Expected calories 450, got %+v", got.Nutrition.Calories)
	}
	if got.Nutrition.ProteinG.Known {
		t.Errorf("Expected unknown protein to survive the round trip")
	}

	ids, err := archive.List("u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "meal-1" || ids[1] != "meal-2" {
		t.Errorf("Expected [meal-1 meal-2], got %v", ids)
	}

	// Other users see nothing.
	ids, err = archive.List("u2")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no meals for u2, got %v", ids)
	}
}

func TestMealArchive_LoadMissing(t *testing.T) {
	archive, err := NewMealArchive(t.TempDir())
	if err != nil {
		t.Fatalf("NewMealArchive failed: %v", err)
	}

	if _, err := archive.Load("u1", "missing"); err == nil {
		t.Fatal("Expected error for missing meal")
	}
}
