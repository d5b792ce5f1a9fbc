package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/thajiyev/quizextract/internal/quiz"
)

var (
	// "12. text" or "12) text"; the captured number is a start marker only,
	// question order comes from the scanner's own counter so renumbering
	// typos in the source cannot corrupt the result.
	reQuestionStart = regexp.MustCompile(`^(\d+)[.)]\s*(.*)$`)
	// "A) text" or "B. text"; physical line order defines option order, the
	// letter is never trusted for it. Uppercase only, so a continuation line
	// starting with "e.g. ..." is not mistaken for an option.
	reOptionStart = regexp.MustCompile(`^([A-Z])[.)]\s*(.*)$`)
)

// ParsePlusEnd scans the plus_end convention: numbered questions followed by
// lettered options, the correct option ending with a run of '+' characters
// (a single trailing '+' counts). The marker run and any whitespace before
// it are stripped from the stored text.
func ParsePlusEnd(text string) ([]quiz.Question, []quiz.SkipReason) {
	return scanNumbered(text, true)
}

// ParseQuestionsOnly scans the same numbered-question grammar without any
// correctness marker; every option starts out is_correct=false pending the
// answer-key merge.
func ParseQuestionsOnly(text string) ([]quiz.Question, []quiz.SkipReason) {
	return scanNumbered(text, false)
}

func scanNumbered(text string, markCorrect bool) ([]quiz.Question, []quiz.SkipReason) {
	s := &numberedScanner{markCorrect: markCorrect}
	for _, line := range strings.Split(text, "\n") {
		s.feed(strings.TrimSpace(line))
	}
	s.finishQuestion()
	return s.questions, s.skipped
}

type numberedScanner struct {
	markCorrect bool
	counter     int // 1-based question counter, the authoritative order

	questions []quiz.Question
	skipped   []quiz.SkipReason

	inQuestion bool
	qLines     []string
	optLines   [][]string
}

func (s *numberedScanner) feed(line string) {
	if line == "" {
		return
	}
	if m := reQuestionStart.FindStringSubmatch(line); m != nil {
		s.finishQuestion()
		s.inQuestion = true
		s.counter++
		if m[2] != "" {
			s.qLines = append(s.qLines, m[2])
		}
		return
	}
	if s.inQuestion {
		if m := reOptionStart.FindStringSubmatch(line); m != nil {
			s.optLines = append(s.optLines, []string{m[2]})
			return
		}
		// continuation of the current option or of the question text
		if n := len(s.optLines); n > 0 {
			s.optLines[n-1] = append(s.optLines[n-1], line)
		} else {
			s.qLines = append(s.qLines, line)
		}
	}
	// lines before the first numbered question are preamble, ignored
}

func (s *numberedScanner) finishQuestion() {
	if !s.inQuestion {
		return
	}
	defer func() {
		s.inQuestion = false
		s.qLines = nil
		s.optLines = nil
	}()

	label := fmt.Sprintf("question %d", s.counter)
	q := quiz.Question{
		Order: s.counter,
		Text:  strings.TrimSpace(strings.Join(s.qLines, " ")),
	}
	if q.Text == "" {
		s.skip(label, "empty question text")
		return
	}

	correct := 0
	for i, lines := range s.optLines {
		text := strings.TrimSpace(strings.Join(lines, " "))
		text = strings.TrimSpace(strings.TrimLeft(text, "○")) // DOCX list bullets leak into exported text
		isCorrect := false
		if s.markCorrect {
			if stripped := strings.TrimRight(text, "+"); stripped != text {
				isCorrect = true
				correct++
				text = strings.TrimRight(stripped, " \t")
			}
		}
		if text == "" {
			s.skip(label, fmt.Sprintf("option %d is empty", i))
			return
		}
		q.Options = append(q.Options, quiz.Option{Text: text, IsCorrect: isCorrect, Order: i})
	}

	if len(q.Options) < 2 {
		s.skip(label, fmt.Sprintf("only %d option(s), need at least 2", len(q.Options)))
		return
	}
	if s.markCorrect {
		switch {
		case correct == 0:
			s.skip(label, "no option marked with trailing '+'")
			return
		case correct > 1:
			s.skip(label, fmt.Sprintf("%d options marked with trailing '+', want exactly 1", correct))
			return
		}
	}
	s.questions = append(s.questions, q)
}

func (s *numberedScanner) skip(label, reason string) {
	s.skipped = append(s.skipped, quiz.SkipReason{Label: label, Reason: reason})
}
