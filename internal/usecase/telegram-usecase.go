package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
)

const MessageContactNotificationTitle = "📧 New contact form submission"

type BotSender interface {
	Send(c api.Chattable) (api.Message, error)
}

// TelegramNotifier forwards contact submissions to staff chats.
type TelegramNotifier struct {
	bot     BotSender
	chatIDs []int64
}

func NewTelegramNotifier(cfg config.Telegram, bot BotSender) *TelegramNotifier {
	return &TelegramNotifier{
		bot:     bot,
		chatIDs: cfg.NotifyChatIDs,
	}
}

func (t *TelegramNotifier) NotifyContact(ctx context.Context, record model.ContactRecord) error {
	text := prepareContactNotification(record)
	var errs []error
	for _, chatID := range t.chatIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := t.bot.Send(api.NewMessage(chatID, text)); err != nil {
			errs = append(errs, fmt.Errorf("failed to send to chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

func prepareContactNotification(record model.ContactRecord) string {
	result := strings.Builder{}
	result.WriteString(MessageContactNotificationTitle + "\n")
	result.WriteString(fmt.Sprintf("Name: %s\n", record.Submission.Name))
	result.WriteString(fmt.Sprintf("Email: %s\n", record.Submission.Email))
	result.WriteString(fmt.Sprintf("Message: %s\n", record.Submission.Message))
	result.WriteString(fmt.Sprintf("Submitted: %s", record.SubmittedAt.Format(time.RFC1123)))
	return result.String()
}
