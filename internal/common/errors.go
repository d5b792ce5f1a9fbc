package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Parse failure taxonomy. The pipeline and callers branch on these with
// errors.Is; everything else is an internal error.
var (
	// ErrUnreadableFile: no text layer could be recovered from the document.
	// Fatal, no fallback — both extraction paths need text.
	ErrUnreadableFile = errors.New("no readable text layer")
	// ErrUnsupportedMode: the answer-marking mode is not one of the known
	// three. Caller bug, fatal.
	ErrUnsupportedMode = errors.New("unsupported answer marking mode")
	// ErrNoQuestions: zero valid questions survived a parse path.
	ErrNoQuestions = errors.New("no valid questions found")
	// ErrAIExtraction: any AI-path failure (credential, transport, response
	// shape, invariants). Recovered by falling back to the structural parser.
	ErrAIExtraction = errors.New("ai extraction failed")
	// ErrParsingFailed: both paths exhausted.
	ErrParsingFailed = errors.New("parsing failed")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ParseFailure is the terminal error when the AI path (if attempted) and the
// structural parser both failed. It keeps both underlying reasons so callers
// can report them together.
type ParseFailure struct {
	AIErr    error
	RegexErr error
}

func (e *ParseFailure) Error() string {
	if e.AIErr != nil {
		return fmt.Sprintf("parsing failed: ai: %v; regex: %v", e.AIErr, e.RegexErr)
	}
	return fmt.Sprintf("parsing failed: %v", e.RegexErr)
}

func (e *ParseFailure) Unwrap() []error {
	errs := []error{ErrParsingFailed}
	if e.AIErr != nil {
		errs = append(errs, e.AIErr)
	}
	if e.RegexErr != nil {
		errs = append(errs, e.RegexErr)
	}
	return errs
}
