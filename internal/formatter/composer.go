// Package formatter собирает финальное HTML-сообщение для Telegram из
// выбранного товара: бразильский формат цены, честная скидка, ярусный
// заголовок и призыв к действию.
package formatter

import (
	"fmt"
	"html"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/offer"
)

// Post — готовое к отправке сообщение с фотографией.
type Post struct {
	Caption  string
	PhotoURL string
	Link     string
}

// Tier — ярус заголовка. Порядок проверки фиксированный: скидка,
// виральность, рейтинг, дешевизна, затем дефолт.
type Tier int

const (
	TierSuperDiscount Tier = iota
	TierViral
	TierTopRated
	TierBargain
	TierDefault
)

// Composer строит подписи к постам. Чистая логика без I/O: весь ввод —
// товар и уже разрешённый заголовок.
type Composer struct {
	cfg       config.Composer
	headlines config.Headlines
	ctas      []string
}

// New создаёт composer с пулами шаблонов из каталога.
func New(cfg config.Composer, catalog config.Catalog) *Composer {
	return &Composer{
		cfg:       cfg,
		headlines: catalog.Headlines,
		ctas:      catalog.CTAs,
	}
}

// Compose собирает сообщение. Цены и скидка детерминированы; выбор
// конкретного шаблона внутри яруса и призыва к действию случайный —
// это косметическое разнообразие, сам ярус однозначен.
func (c *Composer) Compose(o offer.Offer, title string) Post {
	discount := c.discount(o.PriceMin, o.PriceMax)
	tier := c.headlineTier(discount, o)

	var sb strings.Builder
	sb.WriteString(pick(c.pool(tier)))
	sb.WriteString("\n\n")
	sb.WriteString("🛍️ <b>" + html.EscapeString(title) + "</b>\n\n")

	if discount > 0 {
		fmt.Fprintf(&sb, "📉 <b>-%d%% OFF!</b>\n", discount)
		fmt.Fprintf(&sb, "💰 De <s>%s</s> por <b>%s</b>\n", FormatPrice(o.PriceMax), FormatPrice(o.PriceMin))
	} else {
		fmt.Fprintf(&sb, "💰 Apenas: <b>%s</b>\n", FormatPrice(o.PriceMin))
	}

	if o.Sales > 0 {
		fmt.Fprintf(&sb, "📦 +%s vendidos", formatSales(o.Sales))
		if o.RatingStar > 0 {
			fmt.Fprintf(&sb, " | ⭐ %.1f", o.RatingStar)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\n%s <a href=\"%s\">Ver na Shopee</a>", pick(c.ctas), o.OfferLink)

	return Post{
		Caption:  sb.String(),
		PhotoURL: o.ImageURL,
		Link:     o.OfferLink,
	}
}

// discount считает честную скидку только по ценам. Поле priceDiscountRate
// из API приходит кривым и не используется вообще.
func (c *Composer) discount(priceMin, priceMax float64) int {
	if priceMax <= priceMin || priceMin <= 0 {
		return 0
	}
	d := int((priceMax - priceMin) / priceMax * 100)
	if d < c.cfg.MinDiscount {
		return 0
	}
	return d
}

// headlineTier выбирает ярус заголовка. Первое сработавшее правило
// выигрывает, даже если товар подходит под несколько ярусов сразу.
func (c *Composer) headlineTier(discount int, o offer.Offer) Tier {
	switch {
	case discount >= c.cfg.SuperDiscount:
		return TierSuperDiscount
	case o.Sales >= c.cfg.ViralSales:
		return TierViral
	case o.RatingStar >= c.cfg.TopRating:
		return TierTopRated
	case o.PriceMin < c.cfg.BargainPrice:
		return TierBargain
	default:
		return TierDefault
	}
}

func (c *Composer) pool(tier Tier) []string {
	switch tier {
	case TierSuperDiscount:
		return c.headlines.SuperDiscount
	case TierViral:
		return c.headlines.Viral
	case TierTopRated:
		return c.headlines.TopRated
	case TierBargain:
		return c.headlines.Bargain
	default:
		return c.headlines.Default
	}
}

func pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.IntN(len(pool))]
}

// FormatPrice форматирует сумму по бразильскому стандарту:
// точка — разделитель тысяч, запятая — десятичный ("R$ 1.234,56").
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	return "R$ " + grouped.String() + "," + frac
}

// formatSales сокращает счётчики продаж от тысячи: 2500 -> "2,5k".
func formatSales(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	s := strconv.FormatFloat(float64(n)/1000, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return strings.ReplaceAll(s, ".", ",") + "k"
}
