package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/llm"
	"github.com/thajiyev/quizextract/internal/quiz"
)

// ExtractQuestions implements llm.QuestionExtractor over chat/completions.
// Every failure mode — missing credential, transport, response shape, schema
// mismatch, invariant violation — comes back wrapped in
// common.ErrAIExtraction; the caller's only reaction is to fall back.
func (c *Client) ExtractQuestions(ctx context.Context, req llm.ExtractRequest) ([]quiz.Question, []byte, error) {
	questions, raw, err := c.extract(ctx, req)
	if err != nil {
		return nil, raw, fmt.Errorf("%w: %w", common.ErrAIExtraction, err)
	}
	return questions, raw, nil
}

func (c *Client) extract(ctx context.Context, req llm.ExtractRequest) ([]quiz.Question, []byte, error) {
	if c.cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("no api key configured")
	}

	rid := uuid.New().String()
	start := time.Now()
	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"mode", string(req.Mode),
		"text_len", len(req.Text),
		"answer_text_len", len(req.AnswerText),
	)

	schema := llm.BuildQuestionsJSONSchema()
	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"n":               1,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildSystemPrompt()},
			{"role": "user", "content": llm.BuildUserPrompt(req)},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error", "req_id", rid, "error", err, "raw_bytes", len(raw))
		return nil, raw, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices", "req_id", rid, "raw", string(raw))
		return nil, raw, fmt.Errorf("no choices in openai response")
	}

	content, err := llm.NormalizeResponseJSON([]byte(cc.Choices[0].Message.Content))
	if err != nil {
		c.log.Error("llm.extract.normalize_error", "req_id", rid, "error", err)
		return nil, []byte(cc.Choices[0].Message.Content), err
	}
	if err := llm.ValidateJSONAgainstSchema(schema, content); err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(content),
		)
		return nil, content, fmt.Errorf("schema validation failed: %w", err)
	}

	var payload struct {
		Questions []quiz.Question `json:"questions"`
	}
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, content, fmt.Errorf("unmarshal questions: %w", err)
	}

	// Same invariants the rule-based parser enforces; the model gets no slack.
	for _, q := range payload.Questions {
		if err := quiz.CheckQuestion(q); err != nil {
			c.log.Error("llm.extract.invariant_violation",
				"req_id", rid, "question", q.Order, "error", err,
			)
			return nil, content, fmt.Errorf("question %d: %w", q.Order, err)
		}
	}
	quiz.Renumber(payload.Questions)

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"questions", len(payload.Questions),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return payload.Questions, content, nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			c.log.Warn("openai response body close error", "error", cerr)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
