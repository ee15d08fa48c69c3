// Package selector прячет опциональный AI за едиными интерфейсами выбора
// кандидата и переписывания заголовка. Планировщик всегда зовёт один и тот
// же интерфейс и не знает, настроен ли Gemini: без ключа подставляются
// fallback-реализации, при сбоях AI деградирует до них же. AI может улучшить
// выдачу, но никогда не должен блокировать постинг.
package selector

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/gemini"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/offer"
)

// ErrBatchRejected возвращается, когда судья осознанно отклонил весь батч.
// Это единственный путь к «нет кандидата в этом цикле»: инфраструктурные
// сбои сюда не попадают, они откатываются на случайный выбор.
var ErrBatchRejected = errors.New("all candidates rejected")

// Selector выбирает один товар из непустого батча кандидатов.
type Selector interface {
	Select(ctx context.Context, candidates []offer.Offer) (offer.Offer, error)
}

// Rewriter возвращает отображаемый заголовок товара. Ошибок не бывает:
// худший случай — исходный заголовок без изменений.
type Rewriter interface {
	Rewrite(ctx context.Context, rawTitle string, price float64) string
}

// Picker — та часть gemini.Ranker, которая нужна AI-селектору.
type Picker interface {
	Pick(ctx context.Context, candidates []offer.Offer) (int, error)
}

// TitleRewriter — та часть gemini.TitleRewriter, которая нужна AI-рерайтеру.
type TitleRewriter interface {
	Rewrite(ctx context.Context, rawTitle string, price float64) (string, error)
}

// RandomSelector выбирает кандидата равномерно случайно.
type RandomSelector struct{}

// Select реализует Selector.
func (RandomSelector) Select(_ context.Context, candidates []offer.Offer) (offer.Offer, error) {
	if len(candidates) == 0 {
		return offer.Offer{}, ErrBatchRejected
	}
	return candidates[rand.IntN(len(candidates))], nil
}

// AISelector выбирает кандидата через Gemini, откатываясь на случайный
// выбор при любом инфраструктурном сбое или непарсибельном ответе.
type AISelector struct {
	picker   Picker
	fallback RandomSelector
}

// NewAISelector создаёт AI-селектор поверх ранкера.
func NewAISelector(picker Picker) *AISelector {
	return &AISelector{picker: picker}
}

// Select реализует Selector.
func (s *AISelector) Select(ctx context.Context, candidates []offer.Offer) (offer.Offer, error) {
	if len(candidates) == 0 {
		return offer.Offer{}, ErrBatchRejected
	}

	idx, err := s.picker.Pick(ctx, candidates)
	if err != nil {
		log.Printf("AI ranker failed, falling back to random choice: %v", err)
		return s.fallback.Select(ctx, candidates)
	}
	if idx == gemini.RejectAll {
		return offer.Offer{}, ErrBatchRejected
	}
	return candidates[idx], nil
}

// NoopRewriter возвращает исходный заголовок как есть.
type NoopRewriter struct{}

// Rewrite реализует Rewriter.
func (NoopRewriter) Rewrite(_ context.Context, rawTitle string, _ float64) string {
	return rawTitle
}

// AIRewriter переписывает заголовок через Gemini; при любом сбое
// возвращает исходный заголовок.
type AIRewriter struct {
	rewriter TitleRewriter
}

// NewAIRewriter создаёт AI-рерайтер поверх gemini.TitleRewriter.
func NewAIRewriter(rewriter TitleRewriter) *AIRewriter {
	return &AIRewriter{rewriter: rewriter}
}

// Rewrite реализует Rewriter.
func (r *AIRewriter) Rewrite(ctx context.Context, rawTitle string, price float64) string {
	title, err := r.rewriter.Rewrite(ctx, rawTitle, price)
	if err != nil {
		log.Printf("AI title rewrite failed, keeping raw title: %v", err)
		return rawTitle
	}
	return title
}
