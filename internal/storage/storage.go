package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"meal-recommender/internal/meal"
)

// MealArchive provides file-based storage for generated meals, one JSON file
// per meal under a per-user directory.
type MealArchive struct {
	basePath string
}

// NewMealArchive creates a new MealArchive and ensures the base directory exists.
func NewMealArchive(basePath string) (*MealArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", basePath, err)
	}
	return &MealArchive{basePath: basePath}, nil
}

func (a *MealArchive) mealPath(userID, mealID string) string {
	return filepath.Join(a.basePath, userID, mealID+".json")
}

// Save stores a generated meal for a user.
func (a *MealArchive) Save(userID, mealID string, m *meal.Meal) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal meal: %w", err)
	}

	userDir := filepath.Join(a.basePath, userID)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return fmt.Errorf("failed to create user directory %s: %w", userDir, err)
	}

	if err := os.WriteFile(a.mealPath(userID, mealID), data, 0644); err != nil {
		return fmt.Errorf("failed to write meal file: %w", err)
	}
	return nil
}

// Load retrieves an archived meal by ID.
func (a *MealArchive) Load(userID, mealID string) (*meal.Meal, error) {
	data, err := os.ReadFile(a.mealPath(userID, mealID))
	if err != nil {
		return nil, fmt.Errorf("failed to read meal file: %w", err)
	}

	var m meal.Meal
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal: %w", err)
	}
	return &m, nil
}

// List returns the meal IDs archived for a user, sorted.
func (a *MealArchive) List(userID string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(a.basePath, userID, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob meal files: %w", err)
	}

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		base := filepath.Base(match)
		ids = append(ids, base[:len(base)-len(".json")])
	}
	sort.Strings(ids)
	return ids, nil
}
