package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient определяет интерфейс для работы с Gemini API.
// Это позволяет легко создавать моки для тестирования.
type GeminiClient interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

// Client инкапсулирует работу с Gemini API через официальный SDK.
type Client struct {
	client *genai.Client
}

// Убеждаемся, что Client реализует интерфейс GeminiClient.
var _ GeminiClient = (*Client)(nil)

// NewClient создаёт новый клиент. Ключ приходит из уже разрешённой
// конфигурации процесса, окружение здесь не читается.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client}, nil
}

// GenerateText отправляет запрос к Gemini API и возвращает текстовый ответ.
// Временные ошибки (429 RPM/TPM, 500/502/503/504) повторяются с паузой,
// исчерпание дневной квоты возвращается сразу: повторять его бессмысленно,
// а пайплайн обязан уметь жить без модели.
func (c *Client) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	const maxRetries = 3
	const baseDelay = 12 * time.Second // не чаще 5 запросов в минуту на бесплатном тарифе
	const rateLimitDelay = time.Minute
	const overloadedDelay = 2 * time.Minute

	var lastErr error
	var delay time.Duration

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("Retrying Gemini request (attempt %d/%d) after %v...", attempt+1, maxRetries, delay)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err == nil {
			text, textErr := result.Text()
			if textErr != nil {
				return "", fmt.Errorf("get text from result: %w", textErr)
			}
			return text, nil
		}

		lastErr = err
		errStr := err.Error()

		switch {
		case isQuotaExceededError(errStr):
			return "", fmt.Errorf("gemini quota exceeded (daily limit): %w", err)
		case isRateLimitError(errStr):
			log.Printf("Gemini rate limit (RPM/TPM): %v", err)
			delay = rateLimitDelay
		case isOverloadedError(errStr):
			log.Printf("Gemini overloaded (503): %v", err)
			delay = overloadedDelay
		case isTemporaryError(errStr):
			log.Printf("Gemini temporary error: %v", err)
			delay = baseDelay * time.Duration(attempt+1)
		default:
			return "", fmt.Errorf("generate content: %w", err)
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isQuotaExceededError — дневной лимит (RPD) исчерпан, повторы не помогут.
func isQuotaExceededError(errStr string) bool {
	errLower := strings.ToLower(errStr)
	return strings.Contains(errLower, "quota") ||
		strings.Contains(errLower, "daily limit") ||
		strings.Contains(errLower, "generate_content_free_tier_requests")
}

// isRateLimitError — минутный лимит запросов или токенов.
func isRateLimitError(errStr string) bool {
	errLower := strings.ToLower(errStr)
	return strings.Contains(errLower, "429") ||
		strings.Contains(errLower, "rate limit") ||
		strings.Contains(errLower, "too many requests") ||
		strings.Contains(errLower, "resource exhausted")
}

// isOverloadedError — модель перегружена, нужна длинная пауза.
func isOverloadedError(errStr string) bool {
	errLower := strings.ToLower(errStr)
	return strings.Contains(errLower, "503") ||
		strings.Contains(errLower, "service unavailable") ||
		strings.Contains(errLower, "overloaded")
}

// isTemporaryError — 500/502/504, сервис должен быстро восстановиться.
func isTemporaryError(errStr string) bool {
	errLower := strings.ToLower(errStr)
	return strings.Contains(errLower, "500") ||
		strings.Contains(errLower, "502") ||
		strings.Contains(errLower, "504") ||
		strings.Contains(errLower, "internal server error") ||
		strings.Contains(errLower, "bad gateway") ||
		strings.Contains(errLower, "gateway timeout")
}
