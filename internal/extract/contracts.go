package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: file -> raw text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Format   string // constants.PDF | constants.DOCX
	Method   string // "pdf-rows" | "pdf-plain" | "docx"
	Duration time.Duration
	Warnings []string
}
