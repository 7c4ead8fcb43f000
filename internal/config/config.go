package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported text generation providers.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Config holds the configuration for the application.
type Config struct {
	Provider     string
	GeminiAPIKey string
	GroqAPIKey   string
	ModelName    string

	DatabasePath    string
	MealArchivePath string

	// Pipeline tunables
	ExclusionWindow     int
	HistoryWindow       int
	PromptCharBudget    int
	RepetitionThreshold float64
	Temperature         float64
	MaxOutputTokens     int

	// RequestTimeout bounds one model-backed request end to end.
	RequestTimeout time.Duration

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultModelName           = "gemini-2.5-flash"
	DefaultExclusionWindow     = 5
	DefaultHistoryWindow       = 20
	DefaultPromptCharBudget    = 4000
	DefaultRepetitionThreshold = 0.2
	DefaultTemperature         = 0.9
	DefaultMaxOutputTokens     = 4096
	DefaultRequestTimeoutSecs  = 120
)

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	provider := os.Getenv("MODEL_PROVIDER")
	if provider == "" {
		provider = ProviderGemini
	}
	if provider != ProviderGemini && provider != ProviderGroq {
		return nil, fmt.Errorf("MODEL_PROVIDER must be %q or %q, got %q", ProviderGemini, ProviderGroq, provider)
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if provider == ProviderGemini && geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	groqAPIKey := os.Getenv("GROQ_API_KEY")
	if provider == ProviderGroq && groqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	modelName := os.Getenv("MODEL_NAME")
	if modelName == "" {
		modelName = DefaultModelName
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/meal-recommender.db"
	}

	exclusionWindow, err := intFromEnv("EXCLUSION_WINDOW", DefaultExclusionWindow)
	if err != nil {
		return nil, err
	}
	historyWindow, err := intFromEnv("HISTORY_WINDOW", DefaultHistoryWindow)
	if err != nil {
		return nil, err
	}
	promptBudget, err := intFromEnv("PROMPT_CHAR_BUDGET", DefaultPromptCharBudget)
	if err != nil {
		return nil, err
	}
	maxTokens, err := intFromEnv("MAX_OUTPUT_TOKENS", DefaultMaxOutputTokens)
	if err != nil {
		return nil, err
	}
	repetitionThreshold, err := floatFromEnv("REPETITION_THRESHOLD", DefaultRepetitionThreshold)
	if err != nil {
		return nil, err
	}
	temperature, err := floatFromEnv("GENERATION_TEMPERATURE", DefaultTemperature)
	if err != nil {
		return nil, err
	}
	if temperature < 0 || temperature > 1 {
		return nil, fmt.Errorf("GENERATION_TEMPERATURE must be between 0 and 1, got %v", temperature)
	}
	timeoutSecs, err := intFromEnv("REQUEST_TIMEOUT_SECONDS", DefaultRequestTimeoutSecs)
	if err != nil {
		return nil, err
	}

	// Telegram Config (Optional for CLI, required for Bot)
	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOWED_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS contains invalid id %q", part)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	var adminID int64
	if raw := os.Getenv("ADMIN_TELEGRAM_ID"); raw != "" {
		adminID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID must be an integer, got %q", raw)
		}
	}

	return &Config{
		Provider:               provider,
		GeminiAPIKey:           geminiAPIKey,
		GroqAPIKey:             groqAPIKey,
		ModelName:              modelName,
		DatabasePath:           dbPath,
		MealArchivePath:        os.Getenv("MEAL_ARCHIVE_PATH"),
		ExclusionWindow:        exclusionWindow,
		HistoryWindow:          historyWindow,
		PromptCharBudget:       promptBudget,
		RepetitionThreshold:    repetitionThreshold,
		Temperature:            temperature,
		MaxOutputTokens:        maxTokens,
		RequestTimeout:         time.Duration(timeoutSecs) * time.Second,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
	}, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, raw)
	}
	return v, nil
}
