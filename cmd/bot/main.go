package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blackjack21/internal/bot"
	"blackjack21/internal/config"
	"blackjack21/internal/scoresync"
	"blackjack21/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireBotToken(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "blackjack21-bot", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		log.Printf("Tracing disabled: %v", err)
	}
	defer shutdownTracing(context.Background())

	backend, closer, err := scoresync.Dial(cfg)
	if err != nil {
		log.Fatalf("Failed to open score store: %v", err)
	}
	defer closer.Close()

	b, err := bot.New(cfg, backend)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Run(ctx); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
