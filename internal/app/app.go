package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"meal-recommender/internal/clipper"
	"meal-recommender/internal/config"
	"meal-recommender/internal/database"
	"meal-recommender/internal/meal"
	"meal-recommender/internal/metrics"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/recommend"
	"meal-recommender/internal/storage"
)

// App holds the application's dependencies.
type App struct {
	recommender  *recommend.Recommender
	profileRepo  *profile.Repository
	metricsStore *metrics.Store
	mealArchive  *storage.MealArchive
	mealClipper  *clipper.Clipper
	cfg          *config.Config
	db           *database.DB
}

// NewApp creates and initializes a new App instance.
func NewApp(
	recommender *recommend.Recommender,
	profileRepo *profile.Repository,
	metricsStore *metrics.Store,
	mealArchive *storage.MealArchive,
	mealClipper *clipper.Clipper,
	cfg *config.Config,
	db *database.DB,
) *App {
	return &App{
		recommender:  recommender,
		profileRepo:  profileRepo,
		metricsStore: metricsStore,
		mealArchive:  mealArchive,
		mealClipper:  mealClipper,
		cfg:          cfg,
		db:           db,
	}
}

// boundedContext caps one model-backed request at the configured timeout so
// a hung provider call cannot block its caller indefinitely.
func (a *App) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg == nil || a.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.RequestTimeout)
}

// GenerateMeal generates one meal for a user, records it in history, and
// prints it.
func (a *App) GenerateMeal(ctx context.Context, userID string) (*meal.Meal, error) {
	ctx, cancel := a.boundedContext(ctx)
	defer cancel()

	fmt.Printf("Generating meal for %s...\n", userID)

	rec, err := a.profileRepo.GetRecord(ctx, userID)
	if err != nil {
		return nil, err
	}

	generated, meta, err := a.recommender.Generate(ctx, rec)
	if recordErr := a.metricsStore.RecordMeta(userID, meta, err == nil); recordErr != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.AgentName, recordErr)
	}
	if err != nil {
		return nil, err
	}

	entry := recommend.HistoryEntryFor(rec, generated, time.Now().UTC())
	if err := a.profileRepo.AppendHistory(ctx, userID, entry); err != nil {
		log.Printf("Warning: failed to append history for %s: %v", userID, err)
	}
	mealJSON, err := json.Marshal(generated)
	if err != nil {
		log.Printf("Warning: failed to marshal meal for saving: %v", err)
	} else if err := a.profileRepo.SaveMealJSON(ctx, userID, entry.MealID, mealJSON); err != nil {
		log.Printf("Warning: failed to save meal document for %s: %v", userID, err)
	}
	if a.mealArchive != nil {
		if err := a.mealArchive.Save(userID, entry.MealID, generated); err != nil {
			log.Printf("Warning: failed to archive meal for %s: %v", userID, err)
		}
	}

	printMeal(generated)
	return generated, nil
}

// GenerateMeals generates count meals in sequence. The record is refetched
// before each generation so every prompt sees the meals generated before it.
func (a *App) GenerateMeals(ctx context.Context, userID string, count int) error {
	for i := 0; i < count; i++ {
		if _, err := a.GenerateMeal(ctx, userID); err != nil {
			return fmt.Errorf("meal %d of %d: %w", i+1, count, err)
		}
	}
	return nil
}

// ClipMeal records an externally eaten meal from a recipe URL.
func (a *App) ClipMeal(ctx context.Context, userID, url string) error {
	ctx, cancel := a.boundedContext(ctx)
	defer cancel()

	extracted, err := a.mealClipper.ClipURL(ctx, userID, url)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded \"%s\"", extracted.MealName)
	if extracted.Cuisine != "" {
		fmt.Printf(" (%s)", extracted.Cuisine)
	}
	fmt.Println()
	return nil
}

// GetRecord fetches a user's preference record.
func (a *App) GetRecord(ctx context.Context, userID string) (*profile.Record, error) {
	return a.profileRepo.GetRecord(ctx, userID)
}

// ShowHistory prints a user's recent meal history, newest first.
func (a *App) ShowHistory(ctx context.Context, userID string) error {
	rec, err := a.profileRepo.GetRecord(ctx, userID)
	if err != nil {
		return err
	}

	if len(rec.MealHistory) == 0 {
		fmt.Printf("No meal history for %s.\n", userID)
		return nil
	}

	fmt.Printf("=== MEAL HISTORY (%s) ===\n", userID)
	for _, entry := range rec.MealHistory {
		line := fmt.Sprintf("%s  %s", entry.GeneratedAt.Format("2006-01-02"), entry.RecipeName)
		if entry.Cuisine != "" {
			line += fmt.Sprintf(" [%s]", entry.Cuisine)
		}
		if entry.Rating != nil {
			line += fmt.Sprintf(" (%.1f)", *entry.Rating)
		}
		fmt.Println(line)
	}
	return nil
}

// ShowMetrics prints daily token usage for the last days days.
func (a *App) ShowMetrics(days int) error {
	usage, err := a.metricsStore.GetDailyUsage(days)
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}

	fmt.Println("=== DAILY USAGE ===")
	for _, u := range usage {
		fmt.Printf("%s  runs=%d prompt=%d completion=%d\n",
			u.Date, u.TotalExecution, u.TotalPrompt, u.TotalCompletion)
	}
	return nil
}

// CleanupMetrics removes metrics older than the given number of days.
func (a *App) CleanupMetrics(olderThanDays int) error {
	if err := a.metricsStore.Cleanup(olderThanDays); err != nil {
		return fmt.Errorf("failed to clean up metrics: %w", err)
	}
	fmt.Printf("Removed metrics older than %d days.\n", olderThanDays)
	return nil
}

// Seed inserts the demo users.
func (a *App) Seed(ctx context.Context) error {
	if err := a.profileRepo.SeedDemoUsers(ctx); err != nil {
		return fmt.Errorf("failed to seed demo users: %w", err)
	}
	fmt.Println("Demo users seeded.")
	return nil
}

func printMeal(m *meal.Meal) {
	fmt.Printf("\n=== %s ===\n", m.RecipeName)

	fmt.Println("\nIngredients:")
	for _, ing := range m.Ingredients {
		if ing.Quantity != "" {
			fmt.Printf("- %s: %s %s\n", ing.Item, ing.Quantity, ing.Unit)
		} else {
			fmt.Printf("- %s\n", ing.Item)
		}
	}

	fmt.Println("\nInstructions:")
	for i, step := range m.Instructions {
		fmt.Printf("%d. %s\n", i+1, step)
	}

	fmt.Println("\nNutrition:")
	fmt.Printf("- Calories: %s\n", m.Nutrition.Calories)
	fmt.Printf("- Protein: %sg\n", m.Nutrition.ProteinG)
	fmt.Printf("- Carbs: %sg\n", m.Nutrition.CarbsG)
	fmt.Printf("- Fat: %sg\n", m.Nutrition.FatG)
	fmt.Printf("- Fiber: %sg\n", m.Nutrition.FiberG)

	fmt.Printf("\nEstimated cost per serving: %s\n", m.EstimatedCostPerServing)
}
