// Package pipeline orchestrates a single parse invocation: text extraction,
// then the AI extractor when a credential is configured, then the rule-based
// parser as fallback. One AI attempt, one fallback, no retries — the caller
// decides whether a human re-triggers parsing.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/extract"
	"github.com/thajiyev/quizextract/internal/llm"
	"github.com/thajiyev/quizextract/internal/parser"
	"github.com/thajiyev/quizextract/internal/quiz"
)

// ParseRequest describes one document to parse.
type ParseRequest struct {
	FilePath       string
	AnswerFilePath string // required iff Mode == constants.SeparateFile
	Mode           constants.AnswerMarking
}

type Pipeline struct {
	logger    *slog.Logger
	extractor extract.TextExtractor
	ai        llm.QuestionExtractor // nil disables the AI path
}

func New(logger *slog.Logger, extractor extract.TextExtractor, ai llm.QuestionExtractor) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger, extractor: extractor, ai: ai}
}

// Parse runs the two-strategy pipeline and returns the normalized question
// list plus the skip-reason log. Terminal failures: unsupported mode,
// unreadable file, or both strategies exhausted (common.ErrParsingFailed
// carrying both causes).
func (p *Pipeline) Parse(ctx context.Context, req ParseRequest) (quiz.ParseResult, error) {
	if _, err := parser.Dispatch(req.Mode); err != nil {
		return quiz.ParseResult{}, err
	}
	if req.Mode == constants.SeparateFile && req.AnswerFilePath == "" {
		return quiz.ParseResult{}, fmt.Errorf("%w: separate_file mode requires an answer file", common.ErrInvalidInput)
	}

	// Extraction precedes both strategies; its failure is terminal.
	res, err := p.extractor.Extract(ctx, req.FilePath)
	if err != nil {
		return quiz.ParseResult{}, err
	}
	var answerText string
	if req.Mode == constants.SeparateFile {
		ares, err := p.extractor.Extract(ctx, req.AnswerFilePath)
		if err != nil {
			return quiz.ParseResult{}, common.WrapError(err, "answer file")
		}
		answerText = ares.Text
	}

	var aiErr error
	if p.ai != nil {
		questions, _, err := p.ai.ExtractQuestions(ctx, llm.ExtractRequest{
			Text:       res.Text,
			Mode:       req.Mode,
			AnswerText: answerText,
		})
		if err == nil {
			p.logger.Info("pipeline.ai.ok", "path", req.FilePath, "questions", len(questions))
			return quiz.ParseResult{
				Questions: questions,
				Method:    "ai",
				Warnings:  res.Warnings,
			}, nil
		}
		// Recorded as a warning, not surfaced, unless regex also fails.
		aiErr = err
		p.logger.Warn("pipeline.ai.fallback", "path", req.FilePath, "error", err)
	}

	questions, skipped, err := parser.ParseDocument(res.Text, req.Mode, answerText)
	if err != nil {
		p.logger.Error("pipeline.regex.failed", "path", req.FilePath, "error", err, "skipped", len(skipped))
		if aiErr != nil {
			return quiz.ParseResult{}, &common.ParseFailure{AIErr: aiErr, RegexErr: err}
		}
		return quiz.ParseResult{}, err
	}

	result := quiz.ParseResult{
		Questions: questions,
		Skipped:   skipped,
		Method:    "regex",
		Warnings:  res.Warnings,
	}
	if aiErr != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("ai extraction failed, used regex fallback: %v", aiErr))
	}
	p.logger.Info("pipeline.regex.ok",
		"path", req.FilePath,
		"questions", len(questions),
		"skipped", len(skipped),
	)
	return result, nil
}
