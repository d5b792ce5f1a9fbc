package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeResponseJSON coerces the raw model output into the canonical
// {"questions": [...]} envelope before schema validation:
//   - strips markdown code fences the model sometimes adds despite
//     response_format=json_object
//   - wraps a bare top-level array
//   - if the object lacks a "questions" key but contains exactly one array
//     value, promotes that array
//
// It never touches question content; anything it cannot shape is left for
// schema validation to reject.
func NormalizeResponseJSON(raw []byte) ([]byte, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return nil, fmt.Errorf("empty response content")
	}

	if strings.HasPrefix(s, "[") {
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return nil, fmt.Errorf("decode array response: %w", err)
		}
		return json.Marshal(map[string]any{"questions": arr})
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if _, ok := m["questions"]; ok {
		return []byte(s), nil
	}

	// salvage a single mislabeled array, e.g. {"items": [...]}
	var candidate json.RawMessage
	arrays := 0
	for _, v := range m {
		if sv := strings.TrimSpace(string(v)); strings.HasPrefix(sv, "[") {
			arrays++
			candidate = v
		}
	}
	if arrays != 1 {
		return nil, fmt.Errorf("response has no questions array")
	}
	return json.Marshal(map[string]json.RawMessage{"questions": candidate})
}
