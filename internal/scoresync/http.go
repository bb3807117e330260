package scoresync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"blackjack21/internal/api"
	"blackjack21/internal/player"
)

var ErrUnexpectedStatus = errors.New("unexpected status from score service")

var tracer = otel.Tracer("blackjack21/internal/scoresync")

// HTTPStore talks to the score service over its JSON API.
type HTTPStore struct {
	endpoint string
	http     *http.Client
}

// NewHTTPStore targets the score endpoint, e.g. "http://localhost:8080/api".
// A nil client gets one with the given timeout.
func NewHTTPStore(endpoint string, client *http.Client, timeout time.Duration) *HTTPStore {
	if client == nil {
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPStore{endpoint: endpoint, http: client}
}

func (s *HTTPStore) Score(ctx context.Context, address string) (int, error) {
	address = player.NormalizeAddress(address)

	ctx, span := tracer.Start(ctx, "scoresync.Score", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("score.address", address))

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return 0, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("address", address)
	u.RawQuery = q.Encode()

	var resp api.ScoreResponse
	if err := s.do(ctx, http.MethodGet, u.String(), nil, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return resp.Score, nil
}

func (s *HTTPStore) SetScore(ctx context.Context, address string, score int) error {
	address = player.NormalizeAddress(address)

	ctx, span := tracer.Start(ctx, "scoresync.SetScore", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("score.address", address),
		attribute.Int("score.value", score),
	)

	body, err := json.Marshal(api.UpsertRequest{Address: &address, Score: &score})
	if err != nil {
		return fmt.Errorf("encode score: %w", err)
	}

	var ack api.AckResponse
	if err := s.do(ctx, http.MethodPost, s.endpoint, body, &ack); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (s *HTTPStore) Leaderboard(ctx context.Context, limit int) ([]player.Score, error) {
	ctx, span := tracer.Start(ctx, "scoresync.Leaderboard", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var resp api.LeaderboardResponse
	if err := s.do(ctx, http.MethodGet, s.endpoint, nil, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if limit > 0 && len(resp.Leaderboard) > limit {
		resp.Leaderboard = resp.Leaderboard[:limit]
	}
	return resp.Leaderboard, nil
}

func (s *HTTPStore) do(ctx context.Context, method, target string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var apiErr api.ErrorResponse
		_ = json.NewDecoder(res.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, res.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
