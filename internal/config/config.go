package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Root объединяет все конфигурационные блоки pipeline.yaml.
	Root struct {
		Pipeline Pipeline `yaml:"pipeline"`
		Filter   Filter   `yaml:"filter"`
		Composer Composer `yaml:"composer"`
		Schedule Schedule `yaml:"schedule"`
		Gemini   Gemini   `yaml:"gemini"`
	}

	// Pipeline описывает параметры главного цикла бота.
	Pipeline struct {
		SearchLimit       int `yaml:"search_limit"`
		PageMax           int `yaml:"page_max"`
		DedupCapacity     int `yaml:"dedup_capacity"`
		EmptyRetrySeconds int `yaml:"empty_retry_seconds"` // пауза, когда выдача пустая или всё отфильтровано
		PostRetrySeconds  int `yaml:"post_retry_seconds"`  // пауза после неудачной отправки или дубликата
		CooldownSeconds   int `yaml:"cooldown_seconds"`    // пауза после неожиданного сбоя цикла
	}

	// Filter содержит пороги импульсного фильтра товаров.
	Filter struct {
		PriceFloor   float64       `yaml:"price_floor"`
		PremiumPrice float64       `yaml:"premium_price"` // ниже этой цены работает чёрный список
		MidBandLow   float64       `yaml:"mid_band_low"`
		MidBandHigh  float64       `yaml:"mid_band_high"`
		Strict       FilterProfile `yaml:"strict"`
		Relaxed      FilterProfile `yaml:"relaxed"`
	}

	// FilterProfile — пороги рейтинга и продаж одного режима фильтра.
	FilterProfile struct {
		MidRatingMin float64 `yaml:"mid_rating_min"`
		MidSalesMin  int     `yaml:"mid_sales_min"`
		RatingMin    float64 `yaml:"rating_min"`
		SalesMin     int     `yaml:"sales_min"`
	}

	// Composer содержит пороги для выбора заголовка и отображения скидки.
	Composer struct {
		MinDiscount   int     `yaml:"min_discount"`   // скидки меньше не показываем
		SuperDiscount int     `yaml:"super_discount"` // порог яруса "супер-скидка"
		ViralSales    int     `yaml:"viral_sales"`
		TopRating     float64 `yaml:"top_rating"`
		BargainPrice  float64 `yaml:"bargain_price"`
	}

	// Schedule описывает расписание постинга по часам суток.
	Schedule struct {
		QuietSleepMinutes int      `yaml:"quiet_sleep_minutes"`
		Windows           []Window `yaml:"windows"`
		Default           Window   `yaml:"default"`
	}

	// Window — один часовой диапазон расписания. Диапазон может переходить
	// через полночь (from > to). Первое совпадение в списке выигрывает.
	Window struct {
		Name       string `yaml:"name"`
		From       int    `yaml:"from"`
		To         int    `yaml:"to"`
		Quiet      bool   `yaml:"quiet"`
		MinMinutes int    `yaml:"min_minutes"`
		MaxMinutes int    `yaml:"max_minutes"`
	}

	// Gemini содержит имена моделей для ранжирования и переписывания заголовков.
	Gemini struct {
		ModelRanking string `yaml:"model_ranking"`
		ModelRewrite string `yaml:"model_rewrite"`
	}

	// Catalog — статические данные пайплайна: ключевые слова поиска,
	// чёрный список, пулы заголовков и призывов к действию.
	Catalog struct {
		Keywords  []string  `yaml:"keywords"`
		Blacklist []string  `yaml:"blacklist"`
		Headlines Headlines `yaml:"headlines"`
		CTAs      []string  `yaml:"ctas"`
	}

	// Headlines — пулы шаблонов заголовков по ярусам.
	Headlines struct {
		SuperDiscount []string `yaml:"super_discount"`
		Viral         []string `yaml:"viral"`
		TopRated      []string `yaml:"top_rated"`
		Bargain       []string `yaml:"bargain"`
		Default       []string `yaml:"default"`
	}
)

// LoadRoot читает основной файл конфигурации.
func LoadRoot(path string) (Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Root{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Root{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadCatalog читает файл со статическими каталогами.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("unmarshal catalog: %w", err)
	}
	return cat, nil
}
