// Package extract turns PDF and DOCX files into raw text for the parsing
// stages. A document with no recoverable text layer is a terminal
// common.ErrUnreadableFile; there is no OCR fallback.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
)

type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	format := constants.MapExtToFormat(filepath.Ext(path))
	e.logger.Debug("extract.start", "path", path, "format", string(format))

	var res TextExtractionResult
	var err error
	switch format {
	case constants.PDF:
		res, err = e.extractPDF(path)
	case constants.DOCX:
		res, err = e.extractDOCX(path)
	default:
		return TextExtractionResult{}, fmt.Errorf("%w: unsupported file extension %q", common.ErrInvalidInput, filepath.Ext(path))
	}
	if err != nil {
		e.logger.Error("extract.failed", "path", path, "error", err)
		return res, err
	}

	res.Format = string(format)
	res.Duration = time.Since(start)
	if strings.TrimSpace(res.Text) == "" {
		e.logger.Error("extract.empty", "path", path, "method", res.Method)
		return res, fmt.Errorf("%w: %s", common.ErrUnreadableFile, path)
	}

	e.logger.Info("extract.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
