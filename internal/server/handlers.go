package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/pipeline"
)

type parseResponse struct {
	TestID    uuid.UUID `json:"test_id"`
	Method    string    `json:"method"`
	Questions any       `json:"questions"`
	Skipped   any       `json:"skipped,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// handleParse accepts a multipart upload: "file" (PDF/DOCX), "mode"
// (hash_start | plus_end | separate_file) and, for separate_file, an
// "answer_file". The parsed result is persisted and returned with its
// skip-reason log so the uploader can correct the source and retry.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadMB << 20); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
		return
	}

	mode, ok := constants.ParseAnswerMarking(r.FormValue("mode"))
	if !ok {
		s.writeError(w, fmt.Errorf("%w: %q", common.ErrUnsupportedMode, r.FormValue("mode")))
		return
	}

	filePath, cleanup, err := s.saveUpload(r, "file")
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer cleanup()

	req := pipeline.ParseRequest{FilePath: filePath, Mode: mode}
	if mode == constants.SeparateFile {
		answerPath, answerCleanup, err := s.saveUpload(r, "answer_file")
		if err != nil {
			s.writeError(w, err)
			return
		}
		defer answerCleanup()
		req.AnswerFilePath = answerPath
	}

	result, err := s.pipeline.Parse(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	testID, err := s.testsRepo.SaveResult(r.Context(), originalName(r, "file"), string(mode), result)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, parseResponse{
		TestID:    testID,
		Method:    result.Method,
		Questions: result.Questions,
		Skipped:   result.Skipped,
		Warnings:  result.Warnings,
	})
}

func (s *Server) handleListTests(w http.ResponseWriter, r *http.Request) {
	tests, err := s.testsRepo.ListTests(r.Context(), 50)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tests": tests})
}

func (s *Server) handleGetTest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "testID"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: bad test id", common.ErrInvalidInput))
		return
	}
	t, err := s.testsRepo.GetTest(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleExportTest(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "testID"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: bad test id", common.ErrInvalidInput))
		return
	}
	data, err := s.exporter.ExportTestXLSX(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "test-"+id.String()+".xlsx"))
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("server.export_write_error", "error", err)
	}
}

// saveUpload copies a multipart part into the upload dir, keeping the
// original extension so the extractor can dispatch on it.
func (s *Server) saveUpload(r *http.Request, field string) (string, func(), error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, fmt.Errorf("%w: missing %q upload", common.ErrInvalidInput, field)
		}
		return "", nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	ext := filepath.Ext(hdr.Filename)
	if _, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]; !ok {
		return "", nil, fmt.Errorf("%w: unsupported file extension %q", common.ErrInvalidInput, ext)
	}

	tmp, err := os.CreateTemp(s.cfg.UploadDir, "upload-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(tmp, f); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("store upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("close upload: %w", err)
	}

	path := tmp.Name()
	return path, func() {
		if err := os.Remove(path); err != nil {
			s.logger.Warn("server.upload_cleanup_error", "path", path, "error", err)
		}
	}, nil
}

func originalName(r *http.Request, field string) string {
	if r.MultipartForm == nil {
		return ""
	}
	if fhs := r.MultipartForm.File[field]; len(fhs) > 0 {
		return fhs[0].Filename
	}
	return ""
}
