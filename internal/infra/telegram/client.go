// internal/infra/telegram/client.go
package telegram

import (
	"fmt"
	"time"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter sends run summaries through gopkg.in/telebot.v3.
type TelebotAdapter struct {
	bot *telebot.Bot
}

// NewBot creates a send-only bot. Offline skips the getMe call so a bad
// token surfaces on the first send instead of at startup. An empty apiURL
// uses the public Bot API.
func NewBot(token, apiURL string, timeout time.Duration) (*telebot.Bot, error) {
	b, err := telebot.NewBot(telebot.Settings{
		URL:     apiURL,
		Token:   token,
		Offline: true,
		Client:  newHTTPClient(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the given chat (user, group or channel).
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	_, err := tba.bot.Send(&telebot.Chat{ID: chatID}, text, options)
	return err
}
