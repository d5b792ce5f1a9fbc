// Package server is the thin HTTP wrapper around the parse pipeline and the
// result store. No auth, no sessions, no templates — callers own all of that.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/export"
	"github.com/thajiyev/quizextract/internal/pipeline"
	"github.com/thajiyev/quizextract/internal/repository"
)

type Server struct {
	pipeline  *pipeline.Pipeline
	testsRepo *repository.TestRepository
	exporter  *export.Service
	cfg       common.ServerConfig
	logger    *slog.Logger
}

func New(p *pipeline.Pipeline, repo *repository.TestRepository, exporter *export.Service, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{pipeline: p, testsRepo: repo, exporter: exporter, cfg: cfg, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/tests/parse", s.handleParse)
	r.Get("/api/tests", s.handleListTests)
	r.Get("/api/tests/{testID}", s.handleGetTest)
	r.Get("/api/tests/{testID}/export.xlsx", s.handleExportTest)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("server.encode_error", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	app := classify(err)
	s.writeJSON(w, statusFor(app), map[string]string{
		"code":  app.Code,
		"error": err.Error(),
	})
}

// classify maps any pipeline or store error onto an AppError with a stable
// machine code. Layers that already return an *AppError pass through as-is.
func classify(err error) *common.AppError {
	var app *common.AppError
	if errors.As(err, &app) {
		return app
	}
	switch {
	case errors.Is(err, common.ErrUnsupportedMode):
		return common.NewAppError("UNSUPPORTED_MODE", "unsupported answer marking mode", err)
	case errors.Is(err, common.ErrInvalidInput):
		return common.NewAppError("INVALID_INPUT", "invalid input", err)
	case errors.Is(err, common.ErrNotFound):
		return common.NewAppError("NOT_FOUND", "resource not found", err)
	case errors.Is(err, common.ErrUnreadableFile):
		return common.NewAppError("UNREADABLE_FILE", "no readable text layer", err)
	// before ErrNoQuestions: a ParseFailure unwraps to both, the combined
	// failure is the more specific code
	case errors.Is(err, common.ErrParsingFailed):
		return common.NewAppError("PARSING_FAILED", "parsing failed", err)
	case errors.Is(err, common.ErrNoQuestions):
		return common.NewAppError("NO_QUESTIONS", "no valid questions found", err)
	default:
		return common.NewAppError("INTERNAL", "internal error", err)
	}
}

func statusFor(app *common.AppError) int {
	switch app.Code {
	case "UNSUPPORTED_MODE", "INVALID_INPUT":
		return http.StatusBadRequest
	case "NOT_FOUND":
		return http.StatusNotFound
	case "UNREADABLE_FILE", "NO_QUESTIONS", "PARSING_FAILED":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
