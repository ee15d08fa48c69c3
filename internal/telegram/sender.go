package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/formatter"
)

const (
	// retryAttempts - количество попыток отправки при ошибке
	retryAttempts = 3
	// retryDelay - базовая задержка между попытками
	retryDelay = 2 * time.Second
	// parseMode - подписи собираются в HTML (жирный, зачёркнутый, ссылки)
	parseMode = "HTML"
)

// Sender публикует готовые посты в канал.
type Sender struct {
	client TelegramClient
	chatID string
}

// NewSender создаёт новый экземпляр отправителя.
func NewSender(client TelegramClient, chatID string) *Sender {
	return &Sender{
		client: client,
		chatID: chatID,
	}
}

// Post отправляет пост с фотографией и подписью, повторяя попытку при
// временных ошибках. Ошибка отправки не должна подниматься выше цикла:
// вызывающая сторона логирует её и уходит на короткую паузу.
func (s *Sender) Post(ctx context.Context, post formatter.Post) error {
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			delay := retryDelay * time.Duration(attempt)
			if delay > 10*time.Second {
				delay = 10 * time.Second
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := s.client.SendPhoto(ctx, s.chatID, post.PhotoURL, post.Caption, parseMode)
		if err == nil {
			return nil
		}

		lastErr = err

		// Для части ошибок повтор не поможет (чат не найден, бот заблокирован).
		if !isRetryableError(err) {
			return err
		}
		log.Printf("Telegram send failed (attempt %d/%d): %v", attempt+1, retryAttempts, err)
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryableError определяет, можно ли повторить отправку при данной ошибке.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	nonRetryable := []string{
		"chat not found",
		"bot was blocked",
		"user is deactivated",
		"wrong file identifier",
		"wrong type of the web page content",
		"message caption is too long",
		"bad request",
	}

	for _, marker := range nonRetryable {
		if strings.Contains(errStr, marker) {
			return false
		}
	}

	// По умолчанию считаем ошибку повторяемой (сеть, временные проблемы API).
	return true
}
