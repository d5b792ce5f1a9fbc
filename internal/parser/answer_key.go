package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/thajiyev/quizextract/internal/quiz"
)

// "1. B", "1) b", "12.C" — one answer per line, letter case-insensitive.
var reAnswerLine = regexp.MustCompile(`^(\d+)[.)]\s*([A-Za-z])$`)

// ParseAnswerKey extracts answer-key entries from the secondary file's text.
// Letters map to 0-based option indexes (A=0, B=1, ...). Entries are returned
// in line order; duplicates are resolved last-wins by the merge step.
func ParseAnswerKey(text string) []quiz.AnswerKeyEntry {
	var entries []quiz.AnswerKeyEntry
	for _, line := range strings.Split(text, "\n") {
		m := reAnswerLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil || num < 1 {
			continue
		}
		letter := strings.ToUpper(m[2])
		entries = append(entries, quiz.AnswerKeyEntry{
			Number:      num,
			OptionIndex: int(letter[0] - 'A'),
		})
	}
	return entries
}
