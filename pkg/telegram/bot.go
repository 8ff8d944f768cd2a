package telegram

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot отправляет уведомления в настроенный чат (канал класса).
// Если токен не задан, NewBot возвращает nil: все методы отправки
// безопасны для nil-получателя и просто ничего не делают.
type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewBot создает бота для исходящих уведомлений
func NewBot(token string, chatID int64) (*Bot, error) {
	if token == "" {
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	log.Printf("Telegram bot authorized as %s", api.Self.UserName)
	return &Bot{api: api, chatID: chatID}, nil
}

// SendMessage отправляет произвольное сообщение в чат класса
func (b *Bot) SendMessage(text string) error {
	if b == nil || b.api == nil || b.chatID == 0 {
		return nil
	}
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// SendTaskNotification объявляет новое задание на доске
func (b *Bot) SendTaskNotification(title string, weekday, deadline string, maxScore int) {
	if b == nil {
		return
	}

	message := fmt.Sprintf(
		"📚 *Новое задание!*\n\n"+
			"📝 %s\n"+
			"📅 День: %s\n"+
			"⭐ Максимум баллов: %d\n",
		title, weekday, maxScore,
	)
	if deadline != "" {
		message += fmt.Sprintf("⏰ Дедлайн: %s\n", deadline)
	}

	if err := b.SendMessage(message); err != nil {
		log.Printf("Failed to send task notification: %v", err)
		return
	}
	log.Printf("Task notification sent for %q", title)
}

// SendScoreNotification объявляет выставленный балл
func (b *Bot) SendScoreNotification(studentName, taskTitle string, value, maxScore int, band float64) {
	if b == nil {
		return
	}

	message := fmt.Sprintf(
		"⭐ *Выставлена оценка*\n\n"+
			"👤 Ученик: %s\n"+
			"📝 Задание: %s\n"+
			"🎯 Балл: %d из %d (band %.1f)\n",
		studentName, taskTitle, value, maxScore, band,
	)

	if err := b.SendMessage(message); err != nil {
		log.Printf("Failed to send score notification: %v", err)
		return
	}
	log.Printf("Score notification sent for %s / %q", studentName, taskTitle)
}
