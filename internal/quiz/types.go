// Package quiz defines the normalized question shapes produced by both
// extraction paths and the invariants every result must satisfy.
package quiz

import "fmt"

// Option is a single answer option of a question.
type Option struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Order     int    `json:"order"` // 0-based position within the question
}

// Question is one extracted question with its ordered options.
type Question struct {
	Order   int      `json:"order"` // 1-based, contiguous after normalization
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// AnswerKeyEntry maps a 1-based question number to the 0-based index of its
// correct option, as parsed from a separate answer-key file.
type AnswerKeyEntry struct {
	Number      int
	OptionIndex int
}

// SkipReason explains why a question block was excluded from a parse result.
type SkipReason struct {
	Label  string `json:"label"` // which block/question, e.g. "question 3"
	Reason string `json:"reason"`
}

func (s SkipReason) String() string {
	return fmt.Sprintf("%s: %s", s.Label, s.Reason)
}

// ParseResult is the outcome of one parse invocation.
type ParseResult struct {
	Questions []Question   `json:"questions"`
	Skipped   []SkipReason `json:"skipped,omitempty"`
	Method    string       `json:"method"` // "ai" | "regex"
	Warnings  []string     `json:"warnings,omitempty"`
}
