// Package parser implements the deterministic, rule-based extraction of
// questions from raw document text. Each answer-marking convention gets its
// own line-oriented scanner; malformed question blocks are excluded with a
// recorded reason instead of aborting the whole document.
package parser

import (
	"fmt"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/quiz"
)

// ParseFunc extracts questions from the primary document text. Returned
// question orders are the scanner's own counter and may have gaps where
// blocks were skipped; ParseDocument renumbers the final list.
type ParseFunc func(text string) ([]quiz.Question, []quiz.SkipReason)

// Dispatch maps an answer-marking mode to its grammar. Pure lookup, no state.
func Dispatch(mode constants.AnswerMarking) (ParseFunc, error) {
	switch mode {
	case constants.HashStart:
		return ParseHashStart, nil
	case constants.PlusEnd:
		return ParsePlusEnd, nil
	case constants.SeparateFile:
		return ParseQuestionsOnly, nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedMode, string(mode))
	}
}

// ParseDocument runs the grammar for mode over text, merges the answer key
// when mode is separate_file, and returns the normalized question list plus
// skip reasons. Zero surviving questions is common.ErrNoQuestions.
func ParseDocument(text string, mode constants.AnswerMarking, answerText string) ([]quiz.Question, []quiz.SkipReason, error) {
	parse, err := Dispatch(mode)
	if err != nil {
		return nil, nil, err
	}

	questions, skipped := parse(text)
	if mode == constants.SeparateFile {
		var mergeSkips []quiz.SkipReason
		questions, mergeSkips = MergeAnswerKey(questions, ParseAnswerKey(answerText))
		skipped = append(skipped, mergeSkips...)
	}

	if len(questions) == 0 {
		return nil, skipped, fmt.Errorf("%w: mode %s", common.ErrNoQuestions, string(mode))
	}
	quiz.Renumber(questions)
	return questions, skipped, nil
}
