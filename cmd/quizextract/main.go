package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/export"
	"github.com/thajiyev/quizextract/internal/extract"
	"github.com/thajiyev/quizextract/internal/llm"
	"github.com/thajiyev/quizextract/internal/llm/openai"
	"github.com/thajiyev/quizextract/internal/pipeline"
	"github.com/thajiyev/quizextract/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file    = flag.String("file", "", "test document to parse, PDF or DOCX (required)")
		mode    = flag.String("mode", "", "answer marking: hash_start | plus_end | separate_file (required)")
		answers = flag.String("answers", "", "answer key file, required for separate_file mode")
		out     = flag.String("out", "", "write an XLSX review workbook to this path")
		dbPath  = flag.String("db", "", "persist the result into this SQLite database")
		quiet   = flag.Bool("quiet", false, "suppress the JSON result on stdout")
	)
	flag.Parse()

	if *file == "" || *mode == "" {
		printError("Error: --file and --mode are required\n")
		flag.Usage()
		os.Exit(1)
	}
	marking, ok := constants.ParseAnswerMarking(*mode)
	if !ok {
		printError("Error: unknown mode %q\n", *mode)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	// AI path only when a credential is configured.
	var ai llm.QuestionExtractor
	if cfg.LLM.APIKey != "" {
		ai = openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
	} else {
		logger.Info("no OPENAI_API_KEY set, using rule-based parsing only")
	}

	pipe := pipeline.New(logger, extract.NewExtractor(logger), ai)
	result, err := pipe.Parse(ctx, pipeline.ParseRequest{
		FilePath:       *file,
		AnswerFilePath: *answers,
		Mode:           marking,
	})
	if err != nil {
		logger.Error("parse failed", "file", *file, "error", err)
		os.Exit(1)
	}

	if !*quiet {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			printError("Error: encode result: %v\n", err)
			os.Exit(1)
		}
	}

	if *dbPath == "" && *out == "" {
		return
	}

	var db *sql.DB
	if *dbPath != "" {
		db, err = repository.Open(ctx, *dbPath)
	} else {
		db, err = repository.OpenInMemory(ctx)
	}
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	testsRepo := repository.NewTestRepository(db, logger)
	testID, err := testsRepo.SaveResult(ctx, *file, string(marking), result)
	if err != nil {
		logger.Error("save result", "error", err)
		os.Exit(1)
	}
	logger.Info("result saved", "test_id", testID)

	if *out != "" {
		data, err := export.NewService(testsRepo, logger).ExportTestXLSX(ctx, testID)
		if err != nil {
			logger.Error("export xlsx", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			logger.Error("write xlsx", "path", *out, "error", err)
			os.Exit(1)
		}
		logger.Info("workbook written", "path", *out, "bytes", len(data))
	}
}
