package llm

import (
	"context"

	"github.com/thajiyev/quizextract/constants"
	"github.com/thajiyev/quizextract/internal/quiz"
)

// ExtractRequest carries the extracted document text to the model.
type ExtractRequest struct {
	Text       string
	Mode       constants.AnswerMarking
	AnswerText string // separate_file mode only
}

// QuestionExtractor is the interface the pipeline depends on for the AI path.
// Implementations must return quiz.Questions that already satisfy the
// structural invariants; any failure is uniform — the pipeline's only
// reaction is to fall back to the rule-based parser.
type QuestionExtractor interface {
	ExtractQuestions(ctx context.Context, req ExtractRequest) ([]quiz.Question, []byte /*rawJSON*/, error)
}
