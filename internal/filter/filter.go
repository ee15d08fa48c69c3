// Package filter реализует детерминированный «импульсный» фильтр товаров:
// ценовой пол, чёрный список дешёвых аксессуаров и ступенчатые пороги
// рейтинга/продаж. Порядок правил фиксированный и менять его нельзя.
package filter

import (
	"strings"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/offer"
)

// Filter принимает или отклоняет один товар.
type Filter struct {
	cfg       config.Filter
	blacklist []string
}

// New создаёт фильтр. Термины чёрного списка приводятся к нижнему регистру
// один раз при создании.
func New(cfg config.Filter, blacklist []string) *Filter {
	terms := make([]string, 0, len(blacklist))
	for _, term := range blacklist {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return &Filter{cfg: cfg, blacklist: terms}
}

// Accept решает, годится ли товар для постинга.
// strict=true — основной прогон, strict=false — щадящий добор, когда строгий
// режим не оставил ни одного кандидата. Пороги режимов независимые:
// relaxed не является строгим подмножеством strict.
//
// Правила в фиксированном порядке:
//  1. цена ниже универсального пола — отказ;
//  2. дешёвый товар из чёрного списка — отказ (дорогие «аксессуары»
//     могут быть легитимным премиумом, поэтому выше premium_price
//     список не действует);
//  3. ступенчатые пороги: в среднем ценовом диапазоне дешёвым товарам
//     нужно больше социального доказательства, чем вне его.
func (f *Filter) Accept(o offer.Offer, strict bool) bool {
	price := o.PriceMin

	if price < f.cfg.PriceFloor {
		return false
	}

	if price < f.cfg.PremiumPrice && f.blacklisted(o.ProductName) {
		return false
	}

	profile := f.cfg.Relaxed
	if strict {
		profile = f.cfg.Strict
	}

	if price >= f.cfg.MidBandLow && price <= f.cfg.MidBandHigh {
		return o.RatingStar >= profile.MidRatingMin && o.Sales >= profile.MidSalesMin
	}
	return o.RatingStar >= profile.RatingMin && o.Sales >= profile.SalesMin
}

func (f *Filter) blacklisted(name string) bool {
	name = strings.ToLower(name)
	for _, term := range f.blacklist {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}
