package scoresync

import (
	"fmt"
	"io"

	"blackjack21/internal/config"
	"blackjack21/internal/database"
	"blackjack21/internal/player"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Dial picks the score backend from cfg: the remote score service when
// SCORE_API_URL is set, the local SQLite database otherwise.
func Dial(cfg *config.Config) (Backend, io.Closer, error) {
	if cfg.ScoreAPIURL != "" {
		return NewHTTPStore(cfg.ScoreAPIURL, nil, cfg.HTTPTimeout), nopCloser{}, nil
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open score database: %w", err)
	}
	return NewRepositoryStore(player.NewRepository(db.DB)), db, nil
}
