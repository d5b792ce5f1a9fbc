package constants

// AnswerMarking declares how correct answers are flagged in the source file.
type AnswerMarking string

const (
	// HashStart: questions separated by a +-run line, options by =-run lines,
	// the correct option prefixed with '#'.
	HashStart AnswerMarking = "hash_start"
	// PlusEnd: numbered questions with lettered options, the correct option
	// ending with a run of '+'.
	PlusEnd AnswerMarking = "plus_end"
	// SeparateFile: numbered questions with lettered options and a second
	// answer-key file ("1. B" lines).
	SeparateFile AnswerMarking = "separate_file"
)

// ParseAnswerMarking validates a raw mode string.
func ParseAnswerMarking(s string) (AnswerMarking, bool) {
	switch AnswerMarking(s) {
	case HashStart, PlusEnd, SeparateFile:
		return AnswerMarking(s), true
	default:
		return "", false
	}
}
