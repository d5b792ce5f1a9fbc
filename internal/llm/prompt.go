package llm

import (
	"strings"

	"github.com/thajiyev/quizextract/constants"
)

// BuildSystemPrompt is the behavioral contract on the model: completeness,
// no fabricated options or answers, markers stripped from stored text, and
// formula placeholders preserved verbatim.
func BuildSystemPrompt() string {
	return strings.Join([]string{
		"You are a precise question parser. Extract questions exactly as they appear in the source text, ensuring completeness.",
		"Never invent questions, options or answers that are not present in the source.",
		"Preserve any " + constants.FormulaPlaceholder + " token verbatim wherever it appears.",
		"Return ONLY valid JSON matching the provided JSON Schema, no markdown formatting.",
	}, " ")
}

// BuildUserPrompt assembles the extraction instructions for one document.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	b.WriteString("Extract ALL questions and answers from the text below.\n\nQUESTION TEXT:\n")
	b.WriteString(req.Text)

	if req.Mode == constants.SeparateFile {
		b.WriteString("\n\nANSWER KEY (format like: 1. B, 2. C, 3. D, ...):\n")
		b.WriteString(req.AnswerText)
	}

	b.WriteString("\n\nCRITICAL INSTRUCTIONS:\n")
	b.WriteString("1. Extract EVERY SINGLE question - don't skip any.\n")
	b.WriteString("2. Extract ALL options for each question, in the order they appear.\n")
	switch req.Mode {
	case constants.HashStart:
		b.WriteString("3. The correct option is marked with '#' at the start; remove the marker from the stored text.\n")
	case constants.PlusEnd:
		b.WriteString("3. The correct option is marked with '+' or '++++' at the end; remove the marker from the stored text.\n")
	case constants.SeparateFile:
		b.WriteString("3. Mark the correct option from the answer key: the question number in the key corresponds to question order, the letter to the option position (A=first).\n")
	}
	b.WriteString("4. Exactly one option per question must have \"is_correct\": true.\n")
	b.WriteString("5. Ensure question and option text is COMPLETE - don't cut off.\n")
	b.WriteString("6. Keep any " + constants.FormulaPlaceholder + " token exactly as written.\n")
	b.WriteString("\nReturn ONLY JSON that matches the provided schema. Extract ALL questions now:")
	return b.String()
}
