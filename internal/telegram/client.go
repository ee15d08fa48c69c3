package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// TelegramClient определяет интерфейс для работы с Telegram Bot API.
// Это позволяет легко создавать моки для тестирования.
type TelegramClient interface {
	SendPhoto(ctx context.Context, chatID, photoURL, caption, parseMode string) error
}

// Client инкапсулирует работу с Telegram Bot API.
type Client struct {
	token   string
	client  *http.Client
	apiURL  string
	limiter *rate.Limiter
}

// Убеждаемся, что Client реализует интерфейс TelegramClient.
var _ TelegramClient = (*Client)(nil)

// NewClient создаёт клиента. token обязателен. Лимитер держит запас
// от лимита Bot API в 30 сообщений в секунду: боту хватает одного
// поста за цикл, поэтому режем до одного запроса в секунду.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiURL:  fmt.Sprintf("https://api.telegram.org/bot%s", token),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// SendPhoto отправляет фотографию с подписью.
func (c *Client) SendPhoto(ctx context.Context, chatID, photoURL, caption, parseMode string) error {
	payload := map[string]string{
		"chat_id": chatID,
		"photo":   photoURL,
		"caption": caption,
	}
	if parseMode != "" {
		payload["parse_mode"] = parseMode
	}

	return c.post(ctx, "sendPhoto", payload)
}

// apiResponse — общий конверт ответа Bot API. description нужен для
// классификации ошибок в sender (chat not found и т.п.).
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) post(ctx context.Context, method string, body interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/"+method, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("telegram api status %d", resp.StatusCode)
		}
		return fmt.Errorf("decode telegram response: %w", err)
	}

	if !out.OK {
		if out.Description != "" {
			return fmt.Errorf("telegram api: %s", out.Description)
		}
		return fmt.Errorf("telegram api status %d", resp.StatusCode)
	}

	return nil
}
