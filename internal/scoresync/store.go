package scoresync

import (
	"context"

	"blackjack21/internal/player"
)

// Store is the remote score keeper addressed by lowercased wallet address.
type Store interface {
	Score(ctx context.Context, address string) (int, error)
	SetScore(ctx context.Context, address string, score int) error
}

type Ranker interface {
	Leaderboard(ctx context.Context, limit int) ([]player.Score, error)
}

// Backend is what presentation layers need: scores plus the leaderboard.
type Backend interface {
	Store
	Ranker
}

// RepositoryStore serves scores straight from a player.Repository.
type RepositoryStore struct {
	repo player.Repository
}

func NewRepositoryStore(repo player.Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

func (s *RepositoryStore) Score(ctx context.Context, address string) (int, error) {
	return s.repo.Get(ctx, address)
}

func (s *RepositoryStore) SetScore(ctx context.Context, address string, score int) error {
	return s.repo.Upsert(ctx, address, score)
}

func (s *RepositoryStore) Leaderboard(ctx context.Context, limit int) ([]player.Score, error) {
	return s.repo.Top(ctx, limit)
}
