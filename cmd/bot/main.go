package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/app"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/config"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/dedup"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/filter"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/formatter"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/gemini"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/selector"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/shopee"
	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Загружаем конфигурацию из YAML
	rootCfg, err := config.LoadRoot("configs/pipeline.yaml")
	if err != nil {
		log.Fatalf("load pipeline config: %v", err)
	}

	catalog, err := config.LoadCatalog("configs/catalog.yaml")
	if err != nil {
		log.Fatalf("load catalog config: %v", err)
	}

	// Загружаем переменные окружения (токены)
	envCfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("load env config: %v", err)
	}

	// Инициализируем модули
	source := shopee.NewClient(envCfg.ShopeeAppKey, envCfg.ShopeeAppSecret)
	productFilter := filter.New(rootCfg.Filter, catalog.Blacklist)
	composer := formatter.New(rootCfg.Composer, catalog)
	tgClient := telegram.NewClient(envCfg.TelegramBotToken)
	poster := telegram.NewSender(tgClient, envCfg.TelegramChatID)
	cache := dedup.New(rootCfg.Pipeline.DedupCapacity)

	// Инициализируем Gemini только при наличии ключа; без него бот работает
	// на случайном выборе и исходных названиях товаров.
	var picker selector.Selector = selector.RandomSelector{}
	var rewriter selector.Rewriter = selector.NoopRewriter{}

	if envCfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(ctx, envCfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("failed to create Gemini client: %v", err)
		}
		picker = selector.NewAISelector(gemini.NewRanker(geminiClient, rootCfg.Gemini))
		rewriter = selector.NewAIRewriter(gemini.NewTitleRewriter(geminiClient, rootCfg.Gemini))
		log.Println("Gemini selection enabled")
	} else {
		log.Println("GEMINI_API_KEY is empty, falling back to random selection")
	}

	// Хостинги проверяют живость процесса обычным HTTP-запросом
	go serveLiveness(envCfg.Port)

	loop := app.NewLoop(app.LoopDeps{
		Source:   source,
		Filter:   productFilter,
		Selector: picker,
		Rewriter: rewriter,
		Composer: composer,
		Poster:   poster,
		Dedup:    cache,
		Keywords: catalog.Keywords,
		Pipeline: rootCfg.Pipeline,
		Schedule: rootCfg.Schedule,
		Clock:    nil, // используем time.Now по умолчанию
	})

	log.Println("Starting promo loop...")
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("loop failed: %v", err)
	}

	log.Println("Shutdown complete")
}

func serveLiveness(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Printf("liveness server stopped: %v", err)
	}
}
