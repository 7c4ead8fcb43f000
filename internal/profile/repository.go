package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meal-recommender/internal/profile/profiledb"
)

// ErrNotFound is returned when no record exists for the requested user id.
var ErrNotFound = errors.New("user record not found")

// Repository is a database-backed store for preference records and meal history.
type Repository struct {
	queries       *profiledb.Queries
	db            *sql.DB
	historyWindow int
}

// NewRepository creates a new Repository. historyWindow caps how many history
// entries a Record snapshot carries (newest first).
func NewRepository(d *sql.DB, historyWindow int) *Repository {
	if historyWindow <= 0 {
		historyWindow = 20
	}
	return &Repository{
		queries:       profiledb.New(d),
		db:            d,
		historyWindow: historyWindow,
	}
}

// GetRecord fetches a read-only snapshot of the user's preferences and the
// most recent meal history entries.
func (r *Repository) GetRecord(ctx context.Context, userID string) (*Record, error) {
	user, err := r.queries.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %q: %w", userID, err)
	}

	rec := &Record{
		UserID: user.UserID,
		PlanPreferences: PlanPreferences{
			Length:      int(user.PlanLength),
			Variety:     Variety(user.Variety),
			BudgetLevel: BudgetLevel(user.BudgetLevel),
		},
	}
	if err := decodeTags(user.DietaryRestrictions, &rec.DietaryRestrictions); err != nil {
		return nil, fmt.Errorf("failed to decode dietary restrictions for %q: %w", userID, err)
	}
	if err := decodeTags(user.NutritionGoals, &rec.NutritionGoals); err != nil {
		return nil, fmt.Errorf("failed to decode nutrition goals for %q: %w", userID, err)
	}
	if err := decodeTags(user.FavoriteFoods, &rec.FavoriteFoods); err != nil {
		return nil, fmt.Errorf("failed to decode favorite foods for %q: %w", userID, err)
	}
	if err := decodeTags(user.CuisinePreferences, &rec.PlanPreferences.CuisinePreferences); err != nil {
		return nil, fmt.Errorf("failed to decode cuisine preferences for %q: %w", userID, err)
	}
	if user.MaxPrepMinutes.Valid {
		v := int(user.MaxPrepMinutes.Int64)
		rec.PlanPreferences.MaxPrepMinutes = &v
	}

	rows, err := r.queries.ListHistoryByUser(ctx, profiledb.ListHistoryByUserParams{
		UserID: userID,
		Limit:  int64(r.historyWindow),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list meal history for %q: %w", userID, err)
	}
	for _, row := range rows {
		entry := HistoryEntry{
			MealID:           row.MealID,
			RecipeName:       row.RecipeName,
			GeneratedAt:      row.GeneratedAt,
			IngredientsCount: int(row.IngredientsCount),
			InstructionCount: int(row.InstructionCount),
		}
		if row.Rating.Valid {
			v := row.Rating.Float64
			entry.Rating = &v
		}
		if row.Cuisine.Valid {
			entry.Cuisine = row.Cuisine.String
		}
		if row.PrepTimeMinutes.Valid {
			v := int(row.PrepTimeMinutes.Int64)
			entry.PrepTimeMinutes = &v
		}
		rec.MealHistory = append(rec.MealHistory, entry)
	}

	rec.Normalize()
	return rec, nil
}

// SaveRecord upserts the preference portion of a record. Meal history is
// append-only and not written here.
func (r *Repository) SaveRecord(ctx context.Context, rec *Record) error {
	rec.Normalize()

	restrictions, err := encodeTags(rec.DietaryRestrictions)
	if err != nil {
		return err
	}
	goals, err := encodeTags(rec.NutritionGoals)
	if err != nil {
		return err
	}
	favorites, err := encodeTags(rec.FavoriteFoods)
	if err != nil {
		return err
	}
	cuisines, err := encodeTags(rec.PlanPreferences.CuisinePreferences)
	if err != nil {
		return err
	}

	var maxPrep sql.NullInt64
	if rec.PlanPreferences.MaxPrepMinutes != nil {
		maxPrep = sql.NullInt64{Int64: int64(*rec.PlanPreferences.MaxPrepMinutes), Valid: true}
	}

	now := time.Now().UTC()
	return r.queries.UpsertUser(ctx, profiledb.UpsertUserParams{
		UserID:              rec.UserID,
		DietaryRestrictions: restrictions,
		NutritionGoals:      goals,
		FavoriteFoods:       favorites,
		PlanLength:          int64(rec.PlanPreferences.Length),
		Variety:             string(rec.PlanPreferences.Variety),
		CuisinePreferences:  cuisines,
		MaxPrepMinutes:      maxPrep,
		BudgetLevel:         string(rec.PlanPreferences.BudgetLevel),
		CreatedAt:           now,
		UpdatedAt:           now,
	})
}

// AppendHistory records one generated or imported meal summary for the user.
func (r *Repository) AppendHistory(ctx context.Context, userID string, entry HistoryEntry) error {
	params := profiledb.InsertHistoryEntryParams{
		MealID:           entry.MealID,
		UserID:           userID,
		RecipeName:       entry.RecipeName,
		GeneratedAt:      entry.GeneratedAt,
		IngredientsCount: int64(entry.IngredientsCount),
		InstructionCount: int64(entry.InstructionCount),
	}
	if entry.Rating != nil {
		params.Rating = sql.NullFloat64{Float64: *entry.Rating, Valid: true}
	}
	if entry.Cuisine != "" {
		params.Cuisine = sql.NullString{String: entry.Cuisine, Valid: true}
	}
	if entry.PrepTimeMinutes != nil {
		params.PrepTimeMinutes = sql.NullInt64{Int64: int64(*entry.PrepTimeMinutes), Valid: true}
	}
	if err := r.queries.InsertHistoryEntry(ctx, params); err != nil {
		return fmt.Errorf("failed to append history for %q: %w", userID, err)
	}
	return nil
}

// SaveMealJSON persists a full generated meal document keyed by meal id.
// History carries only the summary; the full meal lives here.
func (r *Repository) SaveMealJSON(ctx context.Context, userID, mealID string, data []byte) error {
	if err := r.queries.InsertMeal(ctx, profiledb.InsertMealParams{
		MealID:    mealID,
		UserID:    userID,
		Data:      string(data),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("failed to save meal %q: %w", mealID, err)
	}
	return nil
}

// GetMealJSON loads a full meal document by meal id.
func (r *Repository) GetMealJSON(ctx context.Context, mealID string) ([]byte, error) {
	row, err := r.queries.GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("meal %q: %w", mealID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get meal %q: %w", mealID, err)
	}
	return []byte(row.Data), nil
}

func decodeTags(raw string, dst *[]string) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	return string(data), nil
}
