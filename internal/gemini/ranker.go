package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/offer"
)

// RejectAll — сентинель в ответе модели: весь батч отклонён.
const RejectAll = -1

// Ranker выбирает из батча кандидатов самый «кликабельный» товар через Gemini.
type Ranker struct {
	client GeminiClient
	model  string
}

// NewRanker создаёт новый экземпляр ранкера.
func NewRanker(client GeminiClient, cfg config.Gemini) *Ranker {
	model := cfg.ModelRanking
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &Ranker{client: client, model: model}
}

// Pick возвращает индекс лучшего кандидата, RejectAll, если модель
// отклонила весь батч, или ошибку, если ответ не удалось распарсить
// либо API недоступен. Решение об откате на случайный выбор принимает
// вызывающая сторона — сам ранкер никогда не выбирает случайно.
func (r *Ranker) Pick(ctx context.Context, candidates []offer.Offer) (int, error) {
	if len(candidates) == 0 {
		return RejectAll, nil
	}

	responseText, err := r.client.GenerateText(ctx, r.model, r.buildPrompt(candidates))
	if err != nil {
		return 0, fmt.Errorf("generate text: %w", err)
	}

	idx, err := parseIndex(responseText)
	if err != nil {
		return 0, fmt.Errorf("parse ranker response: %w", err)
	}
	if idx == RejectAll {
		return RejectAll, nil
	}
	if idx < 0 || idx >= len(candidates) {
		return 0, fmt.Errorf("ranker index %d out of range [0,%d)", idx, len(candidates))
	}
	return idx, nil
}

// buildPrompt собирает промпт с рубрикой импульсной привлекательности.
// Промпт на португальском: и названия товаров, и аудитория канала бразильские.
func (r *Ranker) buildPrompt(candidates []offer.Offer) string {
	var sb strings.Builder

	sb.WriteString(`Você é um especialista em marketing de afiliados da Shopee Brasil.
Abaixo está uma lista de produtos candidatos para o próximo post de um canal de ofertas no Telegram.

Escolha o ÚNICO produto com maior apelo visual e de compra por impulso.
Prefira produtos desejáveis, bonitos ou virais. Penalize produtos chatos, genéricos ou puramente técnicos (peças, insumos, itens sem apelo).

Responda SOMENTE com o número do índice do melhor produto (começando em 0).
Se NENHUM produto for bom o suficiente para postar, responda exatamente -1.
Não escreva mais nada além do número.

Candidatos:
`)

	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. %s | preço R$ %.2f | nota %.2f | %d vendidos\n",
			i, c.ProductName, c.PriceMin, c.RatingStar, c.Sales)
	}

	return sb.String()
}

var indexPattern = regexp.MustCompile(`-?\d+`)

// parseIndex извлекает первое целое число из ответа модели.
// Модели любят добавлять пояснения вокруг числа, поэтому ищем по всему тексту.
func parseIndex(text string) (int, error) {
	match := indexPattern.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no integer in response %q", strings.TrimSpace(text))
	}
	return strconv.Atoi(match)
}
