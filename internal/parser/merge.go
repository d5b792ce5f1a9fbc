package parser

import (
	"fmt"

	"github.com/thajiyev/quizextract/internal/quiz"
)

// MergeAnswerKey marks the correct option of each question from the answer
// key, matching entries by question order. Duplicate key numbers overwrite
// sequentially, so the last occurrence wins. A question whose entry is
// missing or points past its option list is excluded with a reason rather
// than left without a correct answer.
func MergeAnswerKey(questions []quiz.Question, entries []quiz.AnswerKeyEntry) ([]quiz.Question, []quiz.SkipReason) {
	key := make(map[int]int, len(entries))
	for _, e := range entries {
		key[e.Number] = e.OptionIndex
	}

	merged := make([]quiz.Question, 0, len(questions))
	var skipped []quiz.SkipReason
	for _, q := range questions {
		label := fmt.Sprintf("question %d", q.Order)
		idx, ok := key[q.Order]
		if !ok {
			skipped = append(skipped, quiz.SkipReason{Label: label, Reason: "no entry in answer key"})
			continue
		}
		if idx < 0 || idx >= len(q.Options) {
			skipped = append(skipped, quiz.SkipReason{
				Label:  label,
				Reason: fmt.Sprintf("answer key letter %c out of range for %d options", 'A'+idx, len(q.Options)),
			})
			continue
		}
		q.Options[idx].IsCorrect = true
		merged = append(merged, q)
	}
	return merged, skipped
}
