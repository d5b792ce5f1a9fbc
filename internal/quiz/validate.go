package quiz

import (
	"fmt"
	"strings"
)

// CheckQuestion enforces the structural invariants on a single question:
// non-empty text, at least two options with non-empty text, and exactly one
// option flagged correct.
func CheckQuestion(q Question) error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("only %d option(s), need at least 2", len(q.Options))
	}
	correct := 0
	for _, o := range q.Options {
		if strings.TrimSpace(o.Text) == "" {
			return fmt.Errorf("option %d has empty text", o.Order)
		}
		if o.IsCorrect {
			correct++
		}
	}
	switch {
	case correct == 0:
		return fmt.Errorf("no option marked correct")
	case correct > 1:
		return fmt.Errorf("%d options marked correct, want exactly 1", correct)
	}
	return nil
}

// Renumber normalizes question orders to a contiguous 1-based sequence and
// option orders to 0-based positions, preserving the given order.
func Renumber(qs []Question) {
	for i := range qs {
		qs[i].Order = i + 1
		for j := range qs[i].Options {
			qs[i].Options[j].Order = j
		}
	}
}
