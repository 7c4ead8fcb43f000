package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	"meal-recommender/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	ctx := context.Background()

	var textGen llm.TextGenerator
	if cfg.Provider == config.ProviderGemini {
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
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

	bot, err := telegram.NewBot(cfg, application, metricsStore)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram Bot: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	bot.RegisterHandlers()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: nil,
	}

	go func() {
		log.Printf("Telegram Bot Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
