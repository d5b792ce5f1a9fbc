package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/common"
	"github.com/thajiyev/quizextract/internal/quiz"
)

func TestDispatch(t *testing.T) {
	for _, mode := range []constants.AnswerMarking{constants.HashStart, constants.PlusEnd, constants.SeparateFile} {
		if _, err := Dispatch(mode); err != nil {
			t.Errorf("Dispatch(%s) error = %v", mode, err)
		}
	}
	if _, err := Dispatch("star_start"); !errors.Is(err, common.ErrUnsupportedMode) {
		t.Errorf("Dispatch(star_start) error = %v, want ErrUnsupportedMode", err)
	}
}

func TestParseDocumentRenumbersAfterSkips(t *testing.T) {
	// middle block malformed (two '#' marks); survivors must be contiguous
	text := "Q1?\n====\n# a\n====\nb\n++++\nQ2?\n====\n# a\n====\n# b\n++++\nQ3?\n====\na\n====\n# b\n++++"
	questions, skipped, err := ParseDocument(text, constants.HashStart, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 || len(skipped) != 1 {
		t.Fatalf("questions=%d skips=%d, want 2/1", len(questions), len(skipped))
	}
	if questions[0].Order != 1 || questions[1].Order != 2 {
		t.Errorf("orders = %d, %d; want contiguous 1, 2", questions[0].Order, questions[1].Order)
	}
	for _, q := range questions {
		if err := quiz.CheckQuestion(q); err != nil {
			t.Errorf("question %d violates invariants: %v", q.Order, err)
		}
	}
}

func TestParseDocumentSeparateFile(t *testing.T) {
	text := "1. First?\nA) a\nB) b\n2. Second?\nA) a\nB) b\nC) c\n"
	questions, skipped, err := ParseDocument(text, constants.SeparateFile, "1. B\n2. C\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skips: %v", skipped)
	}
	if !questions[0].Options[1].IsCorrect {
		t.Error("question 1 should resolve to letter B")
	}
	if !questions[1].Options[2].IsCorrect {
		t.Error("question 2 should resolve to letter C")
	}
}

func TestParseDocumentNoQuestions(t *testing.T) {
	_, _, err := ParseDocument("nothing structured here", constants.PlusEnd, "")
	if !errors.Is(err, common.ErrNoQuestions) {
		t.Fatalf("error = %v, want ErrNoQuestions", err)
	}
}

func TestParseDocumentAllBlocksInvalid(t *testing.T) {
	text := "Q?\n====\na\n====\nb\n++++"
	_, skipped, err := ParseDocument(text, constants.HashStart, "")
	if !errors.Is(err, common.ErrNoQuestions) {
		t.Fatalf("error = %v, want ErrNoQuestions", err)
	}
	if len(skipped) != 1 {
		t.Errorf("skip reasons lost on failure: %v", skipped)
	}
}

func TestParseDocumentIdempotent(t *testing.T) {
	text := "1. Q?\nA) a+\nB) b\n2. R?\nA) c\nB) d+\n"
	first, firstSkips, err := ParseDocument(text, constants.PlusEnd, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, secondSkips, err := ParseDocument(text, constants.PlusEnd, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(firstSkips, secondSkips) {
		t.Fatal("repeated parses differ")
	}
}
