package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"

	"blackjack21/internal/player"
)

var tracer = otel.Tracer("blackjack21/internal/api")

// Server exposes the score store over HTTP. There is no authentication:
// any caller may overwrite any address's score.
type Server struct {
	repo      player.Repository
	logger    *log.Logger
	limit     int
	startTime time.Time
}

// NewServer creates a score API over repo. limit caps the leaderboard size.
func NewServer(repo player.Repository, limit int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stdout, "[API] ", log.LstdFlags)
	}
	if limit <= 0 {
		limit = player.DefaultLeaderboardLimit
	}

	return &Server{
		repo:      repo,
		logger:    logger,
		limit:     limit,
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequest)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Get("/api", s.handleGetScore)
	r.Post("/api", s.handleUpsertScore)

	return r
}

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Printf("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(),
			time.Since(start).Round(time.Microsecond), middleware.GetReqID(r.Context()))
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Failed to encode response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
