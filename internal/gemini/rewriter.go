package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
)

// TitleRewriter переписывает «сырые» заголовки товаров в короткие
// промо-заголовки через Gemini.
type TitleRewriter struct {
	client GeminiClient
	model  string
}

// NewTitleRewriter создаёт новый экземпляр.
func NewTitleRewriter(client GeminiClient, cfg config.Gemini) *TitleRewriter {
	model := cfg.ModelRewrite
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &TitleRewriter{client: client, model: model}
}

// Rewrite возвращает переписанный заголовок или ошибку. Откат на исходный
// заголовок при сбое — ответственность вызывающей стороны.
// Результат — простой текст; экранирование под HTML делает composer.
func (t *TitleRewriter) Rewrite(ctx context.Context, rawTitle string, price float64) (string, error) {
	prompt := t.buildPrompt(rawTitle, price)

	responseText, err := t.client.GenerateText(ctx, t.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}

	title := cleanTitle(responseText)
	if title == "" {
		return "", fmt.Errorf("empty rewritten title (raw: %q)", responseText)
	}
	return title, nil
}

func (t *TitleRewriter) buildPrompt(rawTitle string, price float64) string {
	return fmt.Sprintf(`Você é um copywriter de um canal de ofertas da Shopee no Telegram.
Reescreva o título do produto abaixo para um post promocional.

Regras:
- Remova o lixo de SEO (palavras repetidas, "frete grátis", "promoção", códigos).
- Mantenha o produto e sua característica principal.
- Mantenha nomes de marcas.
- Comece com exatamente um emoji adequado ao produto.
- No máximo 60 caracteres.
- Responda SOMENTE com o título reescrito, sem aspas e sem comentários.

Título original: %s
Preço: R$ %.2f`, rawTitle, price)
}

// cleanTitle обрезает типичный мусор вокруг ответа модели: кавычки,
// code-блоки, лишние строки.
func cleanTitle(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.Trim(text, "`"))
	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(strings.Trim(text, `"'`))
}
