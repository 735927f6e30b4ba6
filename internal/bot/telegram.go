package bot

import (
	"context"

	"github.com/ad/telegram-meeting-bot/internal/domain"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// TelegramAdapter converts Telegram updates into engine events and
// sends the engine's replies back through the bot API.
type TelegramAdapter struct {
	engine *Engine
	logger domain.Logger
}

// NewTelegramAdapter creates a new TelegramAdapter.
func NewTelegramAdapter(engine *Engine, logger domain.Logger) *TelegramAdapter {
	return &TelegramAdapter{engine: engine, logger: logger}
}

// HandleUpdate is the single entry point registered with the bot client.
func (a *TelegramAdapter) HandleUpdate(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	ev := eventFromUpdate(update)
	if ev == nil {
		return
	}

	if update.CallbackQuery != nil {
		// Acknowledge the button press so the client stops its spinner
		_, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
		if err != nil {
			a.logger.Warn("failed to answer callback query", "error", err)
		}
	}

	for _, reply := range a.engine.HandleEvent(ctx, ev) {
		if reply == nil || reply.Text == "" {
			continue
		}
		params := &tgbot.SendMessageParams{
			ChatID: ev.ChatID,
			Text:   reply.Text,
		}
		if len(reply.Buttons) > 0 {
			params.ReplyMarkup = inlineKeyboard(reply.Buttons)
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			a.logger.Error("failed to send message", "chat_id", ev.ChatID, "error", err)
		}
	}
}

func eventFromUpdate(update *models.Update) *Event {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return &Event{
			Kind:     EventMessage,
			SenderID: update.Message.From.ID,
			ChatID:   update.Message.Chat.ID,
			Text:     update.Message.Text,
			Username: update.Message.From.Username,
			FullName: displayName(update.Message.From),
		}
	case update.CallbackQuery != nil:
		ev := &Event{
			Kind:     EventCallback,
			SenderID: update.CallbackQuery.From.ID,
			Data:     update.CallbackQuery.Data,
			Username: update.CallbackQuery.From.Username,
			FullName: displayName(&update.CallbackQuery.From),
		}
		if update.CallbackQuery.Message.Message != nil {
			ev.ChatID = update.CallbackQuery.Message.Message.Chat.ID
		}
		return ev
	default:
		return nil
	}
}

func displayName(u *models.User) string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

func inlineKeyboard(rows [][]Button) *models.InlineKeyboardMarkup {
	keyboard := make([][]models.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, models.InlineKeyboardButton{
				Text:         btn.Label,
				CallbackData: btn.Data,
			})
		}
		keyboard = append(keyboard, buttons)
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}
