package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blackjack21/internal/database"
	"blackjack21/internal/player"
)

// failingRepo returns err from every call.
type failingRepo struct {
	err     error
	upserts int
}

func (f *failingRepo) Get(ctx context.Context, address string) (int, error) { return 0, f.err }
func (f *failingRepo) Upsert(ctx context.Context, address string, score int) error {
	f.upserts++
	return f.err
}
func (f *failingRepo) Top(ctx context.Context, limit int) ([]player.Score, error) { return nil, f.err }

func newTestServer(t *testing.T) (*Server, *player.SQLiteRepository) {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := player.NewRepository(db.DB)
	return NewServer(repo, 20, log.New(io.Discard, "", 0)), repo
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	w := do(t, server.Routes(), http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
}

func TestGetScoreUnknownAddress(t *testing.T) {
	server, _ := newTestServer(t)

	w := do(t, server.Routes(), http.MethodGet, "/api?address=0xABC", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp ScoreResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Address != "0xabc" || resp.Score != 0 {
		t.Fatalf("resp = %+v, want 0xabc/0", resp)
	}
}

func TestUpsertThenGet(t *testing.T) {
	server, _ := newTestServer(t)
	h := server.Routes()

	w := do(t, h, http.MethodPost, "/api", `{"address":"0xABC","score":150}`)
	if w.Code != http.StatusOK {
		t.Fatalf("upsert status = %d, body %s", w.Code, w.Body.String())
	}
	var ack AckResponse
	if err := json.NewDecoder(w.Body).Decode(&ack); err != nil || !ack.OK {
		t.Fatalf("ack = %+v, err %v", ack, err)
	}

	w = do(t, h, http.MethodGet, "/api?address=0xabc", "")
	var resp ScoreResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Score != 150 {
		t.Fatalf("score = %d, want 150", resp.Score)
	}
}

func TestUpsertValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"not json", "score=1"},
		{"missing address", `{"score":10}`},
		{"empty address", `{"address":"","score":10}`},
		{"missing score", `{"address":"0xabc"}`},
		{"score as string", `{"address":"0xabc","score":"10"}`},
		{"address as number", `{"address":12,"score":10}`},
		{"negative score", `{"address":"0xabc","score":-5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &failingRepo{}
			server := NewServer(repo, 20, log.New(io.Discard, "", 0))

			w := do(t, server.Routes(), http.MethodPost, "/api", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if repo.upserts != 0 {
				t.Fatal("store was touched for invalid input")
			}

			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Error == "" {
				t.Fatalf("error payload = %+v, err %v", resp, err)
			}
		})
	}
}

func TestLeaderboard(t *testing.T) {
	server, repo := newTestServer(t)
	ctx := context.Background()

	for i, addr := range []string{"0xa", "0xb", "0xc"} {
		if err := repo.Upsert(ctx, addr, (i+1)*100); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	w := do(t, server.Routes(), http.MethodGet, "/api", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp LeaderboardResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Leaderboard) != 3 {
		t.Fatalf("len = %d, want 3", len(resp.Leaderboard))
	}
	if resp.Leaderboard[0].Address != "0xc" || resp.Leaderboard[0].Score != 300 {
		t.Fatalf("first = %+v", resp.Leaderboard[0])
	}
	if resp.Leaderboard[0].UpdatedAt.IsZero() {
		t.Fatal("updated_at missing")
	}
}

func TestEmptyLeaderboardIsArray(t *testing.T) {
	server, _ := newTestServer(t)

	w := do(t, server.Routes(), http.MethodGet, "/api", "")
	if !bytes.Contains(w.Body.Bytes(), []byte(`"leaderboard":[]`)) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestStoreErrorsAreServerErrors(t *testing.T) {
	repo := &failingRepo{err: errors.New("database is locked")}
	h := NewServer(repo, 20, log.New(io.Discard, "", 0)).Routes()

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodGet, "/api?address=0xabc", ""},
		{http.MethodGet, "/api", ""},
		{http.MethodPost, "/api", `{"address":"0xabc","score":10}`},
	} {
		w := do(t, h, tc.method, tc.target, tc.body)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("%s %s status = %d, want 500", tc.method, tc.target, w.Code)
		}
		var resp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Error != "database is locked" {
			t.Errorf("%s %s payload = %+v", tc.method, tc.target, resp)
		}
	}
}
