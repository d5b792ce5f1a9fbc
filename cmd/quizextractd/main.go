package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/export"
	"github.com/thajiyev/quizextract/internal/extract"
	"github.com/thajiyev/quizextract/internal/llm"
	"github.com/thajiyev/quizextract/internal/llm/openai"
	"github.com/thajiyev/quizextract/internal/pipeline"
	"github.com/thajiyev/quizextract/internal/repository"
	"github.com/thajiyev/quizextract/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	db, err := repository.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Error("open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	var ai llm.QuestionExtractor
	if cfg.LLM.APIKey != "" {
		ai = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		logger.Info("ai extraction enabled", "model", cfg.LLM.Model)
	} else {
		logger.Info("no OPENAI_API_KEY set, rule-based parsing only")
	}

	testsRepo := repository.NewTestRepository(db, logger)
	pipe := pipeline.New(logger, extract.NewExtractor(logger), ai)
	exporter := export.NewService(testsRepo, logger)
	srv := server.New(pipe, testsRepo, exporter, cfg.Server, logger)

	logger.Info("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Router()); err != nil {
		logger.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}
