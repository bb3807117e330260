package api

import "blackjack21/internal/player"

// ScoreResponse answers GET /api?address=...
type ScoreResponse struct {
	Address string `json:"address"`
	Score   int    `json:"score"`
}

// LeaderboardResponse answers GET /api without an address.
type LeaderboardResponse struct {
	Leaderboard []player.Score `json:"leaderboard"`
}

// UpsertRequest is the POST /api body. Both fields are required.
type UpsertRequest struct {
	Address *string `json:"address"`
	Score   *int    `json:"score"`
}

type AckResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
