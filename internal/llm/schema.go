package llm

// BuildQuestionsJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass it to the model as a structured output constraint and
// also use it locally to validate the response before trusting it.
func BuildQuestionsJSONSchema() map[string]any {
	optionSchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"text":       map[string]any{"type": "string", "minLength": 1},
			"is_correct": map[string]any{"type": "boolean"},
			"order":      map[string]any{"type": "integer", "minimum": 0},
		},
		"required": []string{"text", "is_correct", "order"},
	}
	questionSchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"order":   map[string]any{"type": "integer", "minimum": 1},
			"text":    map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{"type": "array", "minItems": 2, "items": optionSchema},
		},
		"required": []string{"order", "text", "options"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"questions": map[string]any{"type": "array", "minItems": 1, "items": questionSchema},
		},
		"required": []string{"questions"},
	}
}
