// Package main plays blackjack in the terminal.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"blackjack21/internal/config"
	"blackjack21/internal/game"
	"blackjack21/internal/scoresync"
	"blackjack21/internal/session"
	"blackjack21/internal/terminal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, closer, err := scoresync.Dial(cfg)
	if err != nil {
		log.Fatalf("Failed to open score store: %v", err)
	}
	defer closer.Close()

	// Score store failures would garble the table.
	adapter := scoresync.NewAdapter(backend, log.New(io.Discard, "", 0))
	defer adapter.Wait()

	table := terminal.New(os.Stdout, terminal.Options{
		Ranker:           backend,
		RewardThreshold:  cfg.RewardThreshold,
		LeaderboardLimit: cfg.LeaderboardLimit,
	})
	sess := session.New(session.Options{
		Deck:        game.NewInfiniteDeck(nil),
		Sync:        adapter,
		DrawDelay:   cfg.DealerDrawDelay,
		RevealDelay: cfg.DealerRevealDelay,
		OnEvent:     table.OnEvent,
	})

	if err := table.Run(ctx, os.Stdin, sess); err != nil {
		log.Fatalf("Terminal error: %v", err)
	}
}
