package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"meal-recommender/internal/app"
	"meal-recommender/internal/clipper"
	"meal-recommender/internal/config"
	"meal-recommender/internal/database"
	"meal-recommender/internal/llm"
	"meal-recommender/internal/metrics"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/recommend"
	"meal-recommender/internal/storage"
)

func main() {
	ctx := context.Background()

	// .env is optional, real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var textGen llm.TextGenerator
	if cfg.Provider == config.ProviderGemini {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		defer geminiClient.Close()
		textGen = geminiClient
	} else {
		textGen = llm.NewGroqClient(cfg)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	profileRepo := profile.NewRepository(db.SQL, cfg.HistoryWindow)
	metricsStore := metrics.NewStore(db.SQL)

	var mealArchive *storage.MealArchive
	if cfg.MealArchivePath != "" {
		mealArchive, err = storage.NewMealArchive(cfg.MealArchivePath)
		if err != nil {
			log.Fatalf("Failed to initialize meal archive: %v", err)
		}
	}

	params := llm.GenerationParams{
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Model:           cfg.ModelName,
	}

	recommender := recommend.New(profileRepo, textGen, recommend.Options{
		ExclusionWindow:     cfg.ExclusionWindow,
		RepetitionThreshold: cfg.RepetitionThreshold,
		PromptCharBudget:    cfg.PromptCharBudget,
		Params:              params,
	})
	mealClipper := clipper.NewClipper(profileRepo, textGen, params)

	application := app.NewApp(
		recommender,
		profileRepo,
		metricsStore,
		mealArchive,
		mealClipper,
		cfg,
		db,
	)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		user := generateCmd.String("user", "", "User ID to generate a meal for")
		generateCmd.Parse(os.Args[2:])
		if *user == "" {
			log.Fatal("generate requires -user")
		}
		if _, err := application.GenerateMeal(ctx, *user); err != nil {
			log.Fatalf("Generation failed: %v", err)
		}
	case "generate-batch":
		batchCmd := flag.NewFlagSet("generate-batch", flag.ExitOnError)
		user := batchCmd.String("user", "", "User ID to generate meals for")
		count := batchCmd.Int("count", 3, "Number of meals to generate")
		batchCmd.Parse(os.Args[2:])
		if *user == "" {
			log.Fatal("generate-batch requires -user")
		}
		if err := application.GenerateMeals(ctx, *user, *count); err != nil {
			log.Fatalf("Batch generation failed: %v", err)
		}
	case "clip":
		clipCmd := flag.NewFlagSet("clip", flag.ExitOnError)
		user := clipCmd.String("user", "", "User ID to record the meal for")
		url := clipCmd.String("url", "", "Recipe URL to clip")
		clipCmd.Parse(os.Args[2:])
		if *user == "" || *url == "" {
			log.Fatal("clip requires -user and -url")
		}
		if err := application.ClipMeal(ctx, *user, *url); err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
	case "history":
		historyCmd := flag.NewFlagSet("history", flag.ExitOnError)
		user := historyCmd.String("user", "", "User ID to show history for")
		historyCmd.Parse(os.Args[2:])
		if *user == "" {
			log.Fatal("history requires -user")
		}
		if err := application.ShowHistory(ctx, *user); err != nil {
			log.Fatalf("History failed: %v", err)
		}
	case "seed":
		if err := application.Seed(ctx); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
	case "metrics":
		metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := metricsCmd.Int("days", 7, "Show usage for the last N days")
		metricsCmd.Parse(os.Args[2:])
		if err := application.ShowMetrics(*days); err != nil {
			log.Fatalf("Metrics failed: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])
		if err := application.CleanupMetrics(*days); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: meal-recommender <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate          Generate one meal for a user (-user)")
	fmt.Println("  generate-batch    Generate several meals in sequence (-user, -count)")
	fmt.Println("  clip              Record an externally eaten meal from a URL (-user, -url)")
	fmt.Println("  history           Show a user's recent meal history (-user)")
	fmt.Println("  seed              Insert the demo users")
	fmt.Println("  metrics           Show daily token usage (-days)")
	fmt.Println("  metrics-cleanup   Remove old metric records (-days)")
}
