package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/thajiyev/quizextract/internal/repository"
)

// Service produces XLSX bytes from a stored test so an administrator can
// review the extracted questions before publishing them.
type Service struct {
	testsRepo *repository.TestRepository
	logger    *slog.Logger
}

func NewService(testsRepo *repository.TestRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{testsRepo: testsRepo, logger: logger}
}

// ExportTestXLSX returns an XLSX workbook (as bytes) for the given test: one
// row per option, with the question repeated on its first row and a trailing
// sheet note for each skip reason.
func (s *Service) ExportTestXLSX(ctx context.Context, testID uuid.UUID) ([]byte, error) {
	start := time.Now()

	t, err := s.testsRepo.GetTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("load test: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Questions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"#", "Question", "Letter", "Option", "Correct"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, q := range t.Questions {
		for _, o := range q.Options {
			values := []any{q.Order, "", string(rune('A' + o.Order)), o.Text, o.IsCorrect}
			if o.Order == 0 {
				values[1] = q.Text
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	row++ // blank separator before skip reasons
	for _, skip := range t.Skipped {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		_ = f.SetCellValue(sheet, cell, "skipped "+skip.String())
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"test_id", testID,
		"questions", len(t.Questions),
		"skipped", len(t.Skipped),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
