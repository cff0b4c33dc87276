// Package telegram serves the bot webhook: the mini-app entry point and a few
// text commands backed by the engine.
package telegram

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"
)

const welcomeText = "✨ Welcome to your personal space.\n\n" +
	"I decode the numbers of your birth date and keep them in one place, just for you.\n\n" +
	"Ready? Tap the button below 👇"

const helpText = "Commands:\n" +
	"/matrix DD.MM.YYYY - base matrix and destiny sums\n" +
	"/money DD.MM.YYYY - money code\n" +
	"/year DD.MM YYYY - personal year ring\n" +
	"/start - open the app"

// Sender is the part of the Telegram API the handler uses
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Handler processes webhook updates
type Handler struct {
	sender    Sender
	webAppURL string
	secret    string
	log       *logrus.Logger
	timeout   time.Duration
}

// SecretHeader carries the secret token registered with setWebhook
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// NewHandler creates a webhook handler. sender may be nil when no token is set.
// A non-empty secret must match SecretHeader on every update.
func NewHandler(sender Sender, webAppURL, secret string, log *logrus.Logger) *Handler {
	return &Handler{sender: sender, webAppURL: webAppURL, secret: secret, log: log, timeout: 10 * time.Second}
}

// NewBot builds the API client without calling getMe at startup
func NewBot(token string) (*bot.Bot, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

// HandleWebhook acknowledges every well-formed update with 200 so Telegram does
// not redeliver it; processing failures are only logged.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if h.sender == nil {
		http.Error(w, `{"error":"telegram bot not available"}`, http.StatusServiceUnavailable)
		return
	}
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(SecretHeader)), []byte(h.secret)) != 1 {
		h.log.Warn("Rejected webhook call with bad secret token")
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	var update models.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.WithError(err).Warn("Failed to parse Telegram update")
		http.Error(w, `{"error":"invalid request format"}`, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), h.timeout)
	defer cancel()
	if err := h.processUpdate(ctx, &update); err != nil {
		h.log.WithError(err).WithField("update_id", update.ID).Error("Failed to process Telegram update")
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"ok":true}`))
}

func (h *Handler) processUpdate(ctx context.Context, update *models.Update) error {
	if update.Message == nil || update.Message.Chat.ID == 0 {
		return nil
	}
	chatID := update.Message.Chat.ID
	command, args, _ := strings.Cut(strings.TrimSpace(update.Message.Text), " ")
	// commands may arrive as /cmd@botname in groups
	command, _, _ = strings.Cut(command, "@")
	args = strings.TrimSpace(args)

	switch command {
	case "/start":
		return h.send(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   welcomeText,
			ReplyMarkup: &models.InlineKeyboardMarkup{
				InlineKeyboard: [][]models.InlineKeyboardButton{{
					{Text: "Personal space ✨🔮", WebApp: &models.WebAppInfo{URL: h.webAppURL}},
				}},
			},
		})
	case "/matrix":
		d, err := numerology.ParseDate(args)
		if err != nil {
			return h.reply(ctx, chatID, "Please send a date as DD.MM.YYYY, e.g. /matrix 15.05.1990")
		}
		return h.reply(ctx, chatID, FormatChart(numerology.NewChart(d)))
	case "/money":
		d, err := numerology.ParseDate(args)
		if err != nil {
			return h.reply(ctx, chatID, "Please send a date as DD.MM.YYYY, e.g. /money 15.05.1990")
		}
		return h.reply(ctx, chatID, "Money code: "+numerology.NewMoneyCode(d.Day, d.Month, d.Year).Code)
	case "/year":
		day, month, year, err := parseYearArgs(args)
		if err != nil {
			return h.reply(ctx, chatID, "Please send a birthday and a year, e.g. /year 15.05 2025")
		}
		return h.reply(ctx, chatID, FormatYear(numerology.NewYearForecast(day, month, year)))
	default:
		return h.reply(ctx, chatID, helpText)
	}
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string) error {
	return h.send(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text})
}

func (h *Handler) send(ctx context.Context, params *bot.SendMessageParams) error {
	if _, err := h.sender.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("failed to send message to chat %v: %w", params.ChatID, err)
	}
	return nil
}

// parseYearArgs reads "DD.MM YYYY"
func parseYearArgs(args string) (day, month, year int, err error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return 0, 0, 0, numerology.ErrInvalidDate
	}
	year, err = strconv.Atoi(fields[1])
	if err != nil || year < 2 {
		return 0, 0, 0, numerology.ErrInvalidDate
	}
	// validate the birthday against a leap year so 29.02 is accepted
	d, err := numerology.ParseDate(fields[0] + ".2000")
	if err != nil {
		return 0, 0, 0, err
	}
	return d.Day, d.Month, year, nil
}
