package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"blackjack21/internal/player"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleGetScore serves one address's score, or the leaderboard when no
// address is given.
func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api.GetScore", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	address := player.NormalizeAddress(r.URL.Query().Get("address"))
	if address == "" {
		top, err := s.repo.Top(ctx, s.limit)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			s.logger.Printf("Failed to load leaderboard: %v", err)
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if top == nil {
			top = []player.Score{}
		}
		s.writeJSON(w, http.StatusOK, LeaderboardResponse{Leaderboard: top})
		return
	}

	span.SetAttributes(attribute.String("score.address", address))

	score, err := s.repo.Get(ctx, address)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.Printf("Failed to load score for %s: %v", address, err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, ScoreResponse{Address: address, Score: score})
}

func (s *Server) handleUpsertScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "api.UpsertScore", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = UpsertRequest{}
	}

	if req.Address == nil || player.NormalizeAddress(*req.Address) == "" || req.Score == nil {
		s.writeError(w, http.StatusBadRequest, "address and score are required")
		return
	}
	if *req.Score < 0 {
		s.writeError(w, http.StatusBadRequest, "score must not be negative")
		return
	}

	address := player.NormalizeAddress(*req.Address)
	span.SetAttributes(
		attribute.String("score.address", address),
		attribute.Int("score.value", *req.Score),
	)

	if err := s.repo.Upsert(ctx, address, *req.Score); err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.logger.Printf("Failed to save score for %s: %v", address, err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, AckResponse{OK: true})
}
