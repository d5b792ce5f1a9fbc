package llm

import (
	"encoding/json"
	"testing"
)

const questionsJSON = `{"questions":[{"order":1,"text":"Q?","options":[{"text":"a","is_correct":true,"order":0},{"text":"b","is_correct":false,"order":1}]}]}`

func TestNormalizeResponseJSON(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"Canonical", questionsJSON, false},
		{"Fenced", "```json\n" + questionsJSON + "\n```", false},
		{"BareArray", `[{"order":1,"text":"Q?","options":[]}]`, false},
		{"MislabeledArray", `{"items":[{"order":1}]}`, false},
		{"NotJSON", "Sorry, I cannot do that.", true},
		{"NoArray", `{"message":"done"}`, true},
		{"Empty", "   ", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NormalizeResponseJSON([]byte(tc.raw))
			if (err != nil) != tc.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			var m map[string]json.RawMessage
			if err := json.Unmarshal(out, &m); err != nil {
				t.Fatalf("output not JSON: %v", err)
			}
			if _, ok := m["questions"]; !ok {
				t.Fatalf("output missing questions key: %s", out)
			}
		})
	}
}

func TestSchemaValidation(t *testing.T) {
	schema := BuildQuestionsJSONSchema()

	if err := ValidateJSONAgainstSchema(schema, []byte(questionsJSON)); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	testCases := []struct {
		name string
		data string
	}{
		{"EmptyQuestions", `{"questions":[]}`},
		{"OneOption", `{"questions":[{"order":1,"text":"Q?","options":[{"text":"a","is_correct":true,"order":0}]}]}`},
		{"MissingIsCorrect", `{"questions":[{"order":1,"text":"Q?","options":[{"text":"a","order":0},{"text":"b","order":1}]}]}`},
		{"EmptyQuestionText", `{"questions":[{"order":1,"text":"","options":[{"text":"a","is_correct":true,"order":0},{"text":"b","is_correct":false,"order":1}]}]}`},
		{"UnknownField", `{"questions":[],"extra":true}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateJSONAgainstSchema(schema, []byte(tc.data)); err == nil {
				t.Error("invalid payload accepted")
			}
		})
	}
}
