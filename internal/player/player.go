package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidAddress = errors.New("address is required")

const DefaultLeaderboardLimit = 20

// Score is one stored row: the wallet address (lowercased), its score and
// when it was last written.
type Score struct {
	Address   string    `json:"address"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	// Get returns the stored score for address, 0 when unknown.
	Get(ctx context.Context, address string) (int, error)
	// Upsert writes score for address and stamps the update time.
	Upsert(ctx context.Context, address string, score int) error
	// Top returns up to limit rows ordered by score, highest first.
	Top(ctx context.Context, limit int) ([]Score, error)
}

// NormalizeAddress is the canonical key form of a wallet address.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// ShortAddress renders 0x1234...abcd for display.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *SQLiteRepository) Get(ctx context.Context, address string) (int, error) {
	address = NormalizeAddress(address)
	if address == "" {
		return 0, ErrInvalidAddress
	}

	var score int
	err := r.db.QueryRowContext(ctx, `
		SELECT score FROM scores WHERE address = ?
	`, address).Scan(&score)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get score: %w", err)
	}

	return score, nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, address string, score int) error {
	address = NormalizeAddress(address)
	if address == "" {
		return ErrInvalidAddress
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO scores (address, score, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			score = excluded.score,
			updated_at = excluded.updated_at
	`, address, score, r.now())

	if err != nil {
		return fmt.Errorf("failed to save score: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Top(ctx context.Context, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT address, score, updated_at
		FROM scores
		ORDER BY score DESC, address ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	scores := make([]Score, 0, limit)
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.Address, &s.Score, &s.UpdatedAt); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}
