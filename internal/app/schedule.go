package app

import (
	"time"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
)

// Window — разрешённое окно расписания для конкретного часа.
type Window struct {
	Name  string
	Quiet bool
	Min   time.Duration
	Max   time.Duration
}

// ResolveWindow — чистая функция от часа суток к окну расписания.
// Окна проверяются в порядке конфигурации, первое совпадение выигрывает;
// если ни одно не совпало, возвращается окно по умолчанию. Состояние не
// хранится, окно пересчитывается каждый цикл.
func ResolveWindow(cfg config.Schedule, hour int) Window {
	for _, w := range cfg.Windows {
		if hourInBand(hour, w.From, w.To) {
			return toWindow(w)
		}
	}
	return toWindow(cfg.Default)
}

// hourInBand проверяет попадание часа в диапазон [from, to).
// Диапазон может переходить через полночь, например 23..7.
func hourInBand(hour, from, to int) bool {
	if from <= to {
		return hour >= from && hour < to
	}
	return hour >= from || hour < to
}

func toWindow(w config.Window) Window {
	return Window{
		Name:  w.Name,
		Quiet: w.Quiet,
		Min:   time.Duration(w.MinMinutes) * time.Minute,
		Max:   time.Duration(w.MaxMinutes) * time.Minute,
	}
}
