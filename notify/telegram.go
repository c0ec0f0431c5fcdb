package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram pushes the new-order alert as a message to a fixed chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Alert() error {
	msg := tgbotapi.NewMessage(t.chatID, "🔔 New order received")
	_, err := t.api.Send(msg)
	return err
}
