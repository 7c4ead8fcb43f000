package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meal-recommender/internal/app"
	"meal-recommender/internal/config"
	"meal-recommender/internal/meal"
	"meal-recommender/internal/metrics"
	"meal-recommender/internal/profile"
	"meal-recommender/internal/recommend"
)

// Bot wraps the Telegram API and the meal recommendation app.
type Bot struct {
	api          *tgbotapi.BotAPI
	app          *app.App
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, application *app.App, metricsStore *metrics.Store) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		app:          application,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	isAllowed := false
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if update.Message.From.ID == id {
			isAllowed = true
			break
		}
	}

	if !isAllowed {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case msg.Text == "/metrics":
		b.handleMetricsRequest(msg)
	case msg.Text == "/history":
		b.handleHistoryRequest(msg)
	case strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://"):
		b.handleClipRequest(msg)
	default:
		b.handleMealRequest(msg)
	}
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleClipRequest(msg *tgbotapi.Message) {
	statusText := "✂️ *Clipping meal...* \n(Reading the page and updating your history)"
	sentMsg, ok := b.sendMarkdown(msg.Chat.ID, statusText)
	if !ok {
		return
	}

	userID := fmt.Sprintf("%d", msg.From.ID)
	err := b.app.ClipMeal(context.Background(), userID, msg.Text)

	var finalText string
	if err != nil {
		log.Printf("Error clipping meal: %v", err)
		finalText = fmt.Sprintf("❌ *Error clipping meal:*\n```\n%v\n```", safeMarkdown(err))
	} else {
		finalText = "✅ *Meal recorded!* It will count toward your variety analysis."
	}
	b.editMarkdown(msg.Chat.ID, sentMsg.MessageID, finalText)
}

func (b *Bot) handleHistoryRequest(msg *tgbotapi.Message) {
	userID := fmt.Sprintf("%d", msg.From.ID)
	rec, err := b.app.GetRecord(context.Background(), userID)
	if err != nil {
		b.sendMarkdown(msg.Chat.ID, b.recordErrorText(err))
		return
	}

	if len(rec.MealHistory) == 0 {
		b.sendMarkdown(msg.Chat.ID, "_No meals recorded yet._")
		return
	}

	var sb strings.Builder
	sb.WriteString("📖 *Recent Meals*\n\n")
	for _, entry := range rec.MealHistory {
		sb.WriteString(fmt.Sprintf("• *%s*", entry.RecipeName))
		if entry.Cuisine != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", entry.Cuisine))
		}
		sb.WriteString(fmt.Sprintf(" — %s\n", entry.GeneratedAt.Format("Jan 2")))
	}
	b.sendMarkdown(msg.Chat.ID, sb.String())
}

func (b *Bot) handleMealRequest(msg *tgbotapi.Message) {
	statusText := "🧑‍🍳 *Thinking...* \n(Checking your history and generating a meal)"
	sentMsg, ok := b.sendMarkdown(msg.Chat.ID, statusText)
	if !ok {
		return
	}

	userID := fmt.Sprintf("%d", msg.From.ID)
	generated, err := b.app.GenerateMeal(context.Background(), userID)
	if err != nil {
		log.Printf("Error generating meal: %v", err)
		b.editMarkdown(msg.Chat.ID, sentMsg.MessageID, b.recordErrorText(err))
		return
	}

	b.editMarkdown(msg.Chat.ID, sentMsg.MessageID, formatMealMarkdown(generated))
}

func (b *Bot) recordErrorText(err error) string {
	if errors.Is(err, profile.ErrNotFound) {
		return "🙋 I don't have a profile for you yet. Ask the admin to create one."
	}
	var vErr *recommend.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("⚠️ Your profile is incomplete: *%s* is empty.", vErr.Field)
	}
	return fmt.Sprintf("❌ *Error:*\n```\n%v\n```", safeMarkdown(err))
}

func formatMealMarkdown(m *meal.Meal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🍽 *%s*\n\n", m.RecipeName))

	sb.WriteString("*Ingredients*\n")
	for _, ing := range m.Ingredients {
		if ing.Quantity != "" {
			sb.WriteString(fmt.Sprintf("• %s: %s %s\n", ing.Item, ing.Quantity, ing.Unit))
		} else {
			sb.WriteString(fmt.Sprintf("• %s\n", ing.Item))
		}
	}

	sb.WriteString("\n*Instructions*\n")
	for i, step := range m.Instructions {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
	}

	sb.WriteString(fmt.Sprintf("\n*Nutrition*: %s kcal, %sg protein, %sg carbs, %sg fat, %sg fiber\n",
		m.Nutrition.Calories, m.Nutrition.ProteinG, m.Nutrition.CarbsG, m.Nutrition.FatG, m.Nutrition.FiberG))
	sb.WriteString(fmt.Sprintf("*Cost per serving*: %s\n", m.EstimatedCostPerServing))

	return sb.String()
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth(filepath.Dir(b.cfg.DatabasePath))

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDirSize))

	b.sendMarkdown(chatID, sb.String())
}

func (b *Bot) sendMarkdown(chatID int64, text string) (tgbotapi.Message, bool) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send message: %v", err)
		return tgbotapi.Message{}, false
	}
	return sent, true
}

func (b *Bot) editMarkdown(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

func safeMarkdown(err error) string {
	return strings.ReplaceAll(err.Error(), "`", "'")
}
