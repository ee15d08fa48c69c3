package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/formatter"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/offer"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/selector"
)

// ErrNotConfigured возвращается, когда цикл запущен без обязательных зависимостей.
var ErrNotConfigured = errors.New("loop dependencies not configured")

// Clock определяет источник времени (удобно подменять в тестах).
type Clock func() time.Time

// ProductSource ищет товары во внешнем каталоге. Пустой список означает
// либо отсутствие результатов, либо сбой запроса — источник их не различает.
type ProductSource interface {
	Search(ctx context.Context, req offer.SearchRequest) []offer.Offer
}

// Filter решает, достоин ли товар публикации.
type Filter interface {
	Accept(o offer.Offer, strict bool) bool
}

// Composer собирает финальный пост из товара и заголовка.
type Composer interface {
	Compose(o offer.Offer, title string) formatter.Post
}

// Poster публикует подготовленный пост в канал.
type Poster interface {
	Post(ctx context.Context, post formatter.Post) error
}

// Dedup запоминает уже опубликованные товары.
type Dedup interface {
	Contains(id string) bool
	Record(id string)
}

// LoopDeps перечисляет зависимости цикла публикации.
type LoopDeps struct {
	Source   ProductSource
	Filter   Filter
	Selector selector.Selector
	Rewriter selector.Rewriter
	Composer Composer
	Poster   Poster
	Dedup    Dedup
	Keywords []string
	Pipeline config.Pipeline
	Schedule config.Schedule
	Clock    Clock
}

// Loop инкапсулирует бесконечный цикл: поиск, отбор, публикация, пауза.
type Loop struct {
	source   ProductSource
	filter   Filter
	selector selector.Selector
	rewriter selector.Rewriter
	composer Composer
	poster   Poster
	dedup    Dedup
	keywords []string
	pipeline config.Pipeline
	schedule config.Schedule
	clock    Clock
}

// NewLoop создаёт новый экземпляр цикла публикации.
func NewLoop(deps LoopDeps) *Loop {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Loop{
		source:   deps.Source,
		filter:   deps.Filter,
		selector: deps.Selector,
		rewriter: deps.Rewriter,
		composer: deps.Composer,
		poster:   deps.Poster,
		dedup:    deps.Dedup,
		keywords: deps.Keywords,
		pipeline: deps.Pipeline,
		schedule: deps.Schedule,
		clock:    clock,
	}
}

// Run крутит цикл до отмены контекста. Паника внутри одного прохода
// гасится на его границе и не роняет процесс.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.validateDeps(); err != nil {
		return err
	}

	for {
		delay := l.safeCycle(ctx)
		log.Printf("Next cycle in %s", delay)
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// safeCycle исполняет один проход и переводит панику в паузу-кулдаун.
func (l *Loop) safeCycle(ctx context.Context) (delay time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Cycle panicked: %v", r)
			delay = time.Duration(l.pipeline.CooldownSeconds) * time.Second
		}
	}()
	return l.cycle(ctx)
}

// cycle — один проход: поиск, фильтрация, выбор, публикация.
// Возвращает паузу до следующего прохода.
func (l *Loop) cycle(ctx context.Context) time.Duration {
	window := ResolveWindow(l.schedule, l.clock().Hour())
	if window.Quiet {
		log.Printf("Quiet window %q, skipping fetch", window.Name)
		return time.Duration(l.schedule.QuietSleepMinutes) * time.Minute
	}

	emptyRetry := time.Duration(l.pipeline.EmptyRetrySeconds) * time.Second
	postRetry := time.Duration(l.pipeline.PostRetrySeconds) * time.Second

	req := offer.SearchRequest{
		Keyword:  l.keywords[rand.IntN(len(l.keywords))],
		SortType: offer.SortBySales,
		Page:     rand.IntN(l.pipeline.PageMax) + 1,
		Limit:    l.pipeline.SearchLimit,
	}

	log.Printf("Searching %q (page %d)", req.Keyword, req.Page)
	offers := l.source.Search(ctx, req)
	if len(offers) == 0 {
		log.Println("Empty search result")
		return emptyRetry
	}
	log.Printf("Fetched %d offers", len(offers))

	candidates := l.shortlist(offers)
	if len(candidates) == 0 {
		log.Println("No offers survived filtering")
		return emptyRetry
	}
	log.Printf("After filtering: %d candidates", len(candidates))

	chosen, err := l.selector.Select(ctx, candidates)
	if err != nil {
		if errors.Is(err, selector.ErrBatchRejected) {
			log.Println("Batch rejected, nothing worth posting")
		} else {
			log.Printf("Selection failed: %v", err)
		}
		return emptyRetry
	}

	if l.dedup.Contains(chosen.ItemID) {
		log.Printf("Offer %s already posted, skipping", chosen.ItemID)
		return postRetry
	}

	title := l.rewriter.Rewrite(ctx, chosen.ProductName, chosen.PriceMin)
	post := l.composer.Compose(chosen, title)

	if err := l.poster.Post(ctx, post); err != nil {
		log.Printf("Post failed: %v", err)
		return postRetry
	}

	l.dedup.Record(chosen.ItemID)
	log.Printf("Posted offer %s (%s)", chosen.ItemID, req.Keyword)
	return randomBetween(window.Min, window.Max)
}

// shortlist применяет строгий профиль фильтра, а при пустом результате
// повторяет проход со щадящим.
func (l *Loop) shortlist(offers []offer.Offer) []offer.Offer {
	strict := l.applyFilter(offers, true)
	if len(strict) > 0 {
		return strict
	}
	log.Println("Strict filter emptied the batch, retrying relaxed")
	return l.applyFilter(offers, false)
}

func (l *Loop) applyFilter(offers []offer.Offer, strict bool) []offer.Offer {
	var kept []offer.Offer
	for _, o := range offers {
		if l.filter.Accept(o, strict) {
			kept = append(kept, o)
		}
	}
	return kept
}

func (l *Loop) validateDeps() error {
	if l.source == nil || l.filter == nil || l.selector == nil ||
		l.rewriter == nil || l.composer == nil || l.poster == nil || l.dedup == nil {
		return ErrNotConfigured
	}
	if len(l.keywords) == 0 {
		return fmt.Errorf("%w: empty keyword catalog", ErrNotConfigured)
	}
	return nil
}

// randomBetween возвращает равномерную паузу из диапазона [min, max].
func randomBetween(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + rand.N(max-min)
}

// sleep ждёт указанную паузу, прерываясь по отмене контекста.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
