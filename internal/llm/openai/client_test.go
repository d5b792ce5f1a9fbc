package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/llm"
)

func completionFixture(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

const goodContent = `{"questions":[
  {"order":1,"text":"Capital of France?","options":[
    {"text":"London","is_correct":false,"order":0},
    {"text":"Paris","is_correct":true,"order":1}]},
  {"order":2,"text":"2+2?","options":[
    {"text":"4","is_correct":true,"order":0},
    {"text":"5","is_correct":false,"order":1}]}
]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: srv.URL}, nil)
}

func TestExtractQuestions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q", got)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["model"] != "gpt-4o-mini" {
			t.Errorf("model = %v", body["model"])
		}
		if temp, ok := body["temperature"].(float64); !ok || temp > 0.2 {
			t.Errorf("temperature = %v, want low setting", body["temperature"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionFixture(goodContent)))
	})

	questions, _, err := c.ExtractQuestions(context.Background(), llm.ExtractRequest{
		Text: "irrelevant for the fixture",
		Mode: constants.HashStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if !questions[0].Options[1].IsCorrect {
		t.Error("correct flag lost in decode")
	}
}

func TestExtractQuestionsFailures(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"ServerError", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}},
		{"NotJSONContent", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(completionFixture("I could not parse the document.")))
		}},
		{"NoChoices", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}},
		{"SchemaMismatch", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(completionFixture(`{"questions":[{"order":1,"text":"Q?"}]}`)))
		}},
		{"TwoCorrectOptions", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(completionFixture(`{"questions":[{"order":1,"text":"Q?","options":[
				{"text":"a","is_correct":true,"order":0},
				{"text":"b","is_correct":true,"order":1}]}]}`)))
		}},
		{"NoCorrectOption", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(completionFixture(`{"questions":[{"order":1,"text":"Q?","options":[
				{"text":"a","is_correct":false,"order":0},
				{"text":"b","is_correct":false,"order":1}]}]}`)))
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, tc.handler)
			_, _, err := c.ExtractQuestions(context.Background(), llm.ExtractRequest{
				Text: "text",
				Mode: constants.PlusEnd,
			})
			if !errors.Is(err, common.ErrAIExtraction) {
				t.Fatalf("error = %v, want ErrAIExtraction", err)
			}
		})
	}
}

func TestExtractQuestionsNoCredential(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewClient(Config{BaseURL: "http://localhost:1"}, nil)
	_, _, err := c.ExtractQuestions(context.Background(), llm.ExtractRequest{Text: "x", Mode: constants.HashStart})
	if !errors.Is(err, common.ErrAIExtraction) {
		t.Fatalf("error = %v, want ErrAIExtraction", err)
	}
}

func TestExtractQuestionsRenumbers(t *testing.T) {
	gapContent := `{"questions":[
	  {"order":3,"text":"A?","options":[
	    {"text":"x","is_correct":true,"order":0},{"text":"y","is_correct":false,"order":1}]},
	  {"order":9,"text":"B?","options":[
	    {"text":"x","is_correct":false,"order":0},{"text":"y","is_correct":true,"order":1}]}
	]}`
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(completionFixture(gapContent)))
	})
	questions, _, err := c.ExtractQuestions(context.Background(), llm.ExtractRequest{Text: "x", Mode: constants.HashStart})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if questions[0].Order != 1 || questions[1].Order != 2 {
		t.Errorf("orders = %d, %d; want contiguous 1, 2", questions[0].Order, questions[1].Order)
	}
}
