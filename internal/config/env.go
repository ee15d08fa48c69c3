package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env содержит секреты и другие переменные окружения.
// Ключ Gemini опционален: без него бот работает на случайном выборе.
type Env struct {
	ShopeeAppKey     string `envconfig:"SHOPEE_APP_KEY" required:"true"`
	ShopeeAppSecret  string `envconfig:"SHOPEE_APP_SECRET" required:"true"`
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID" required:"true"`
	GeminiAPIKey     string `envconfig:"GEMINI_API_KEY"`
	Port             int    `envconfig:"PORT" default:"8080"`
}

// LoadEnv читает .env (если есть) и переменные окружения.
// Значения очищаются от случайных пробелов: ключи нередко копируют
// из личного кабинета вместе с переводом строки.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	env.ShopeeAppKey = strings.TrimSpace(env.ShopeeAppKey)
	env.ShopeeAppSecret = strings.TrimSpace(env.ShopeeAppSecret)
	env.TelegramBotToken = strings.TrimSpace(env.TelegramBotToken)
	env.TelegramChatID = strings.TrimSpace(env.TelegramChatID)
	env.GeminiAPIKey = strings.TrimSpace(env.GeminiAPIKey)

	return &env, nil
}
