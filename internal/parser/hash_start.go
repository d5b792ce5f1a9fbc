package parser

import (
	"fmt"
	"strings"

	"github.com/thajiyev/quizextract/internal/quiz"
)

// ParseHashStart scans the hash_start convention: question blocks are closed
// by a line consisting only of '+' characters (canonically "++++", any run
// length accepted), segments inside a block are separated by '='-only lines,
// the first segment is the question text and the correct option carries a
// leading '#'. A block with no or multiple '#' options is skipped, never
// resolved by guessing.
func ParseHashStart(text string) ([]quiz.Question, []quiz.SkipReason) {
	var (
		questions []quiz.Question
		skipped   []quiz.SkipReason
		segments  []string
		current   []string
		blockNum  int
	)

	closeSegment := func() {
		joined := strings.TrimSpace(strings.Join(current, " "))
		current = current[:0]
		if joined != "" {
			segments = append(segments, joined)
		}
	}

	closeBlock := func() {
		closeSegment()
		if len(segments) == 0 {
			return
		}
		blockNum++
		q, reason := buildHashBlock(segments, blockNum)
		if reason != "" {
			skipped = append(skipped, quiz.SkipReason{
				Label:  fmt.Sprintf("block %d", blockNum),
				Reason: reason,
			})
		} else {
			questions = append(questions, q)
		}
		segments = segments[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			// blank lines between structural lines are ignored
		case isRun(line, '+'):
			closeBlock()
		case isRun(line, '='):
			closeSegment()
		default:
			current = append(current, line)
		}
	}
	closeBlock()

	return questions, skipped
}

func buildHashBlock(segments []string, blockNum int) (quiz.Question, string) {
	if len(segments) < 3 {
		return quiz.Question{}, fmt.Sprintf("only %d option(s), need at least 2", len(segments)-1)
	}

	q := quiz.Question{Order: blockNum, Text: segments[0]}
	correct := 0
	for i, seg := range segments[1:] {
		isCorrect := strings.HasPrefix(seg, "#")
		if isCorrect {
			correct++
			seg = strings.TrimSpace(strings.TrimLeft(seg, "#"))
		}
		if seg == "" {
			return quiz.Question{}, fmt.Sprintf("option %d is empty", i)
		}
		q.Options = append(q.Options, quiz.Option{Text: seg, IsCorrect: isCorrect, Order: i})
	}

	switch {
	case correct == 0:
		return quiz.Question{}, "no option marked with '#'"
	case correct > 1:
		return quiz.Question{}, fmt.Sprintf("%d options marked with '#', want exactly 1", correct)
	}
	return q, ""
}

// isRun reports whether line consists solely of one or more c characters.
func isRun(line string, c byte) bool {
	if line == "" {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != c {
			return false
		}
	}
	return true
}
