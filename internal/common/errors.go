package common

import (
	"errors"
	"fmt"
)

// Kind classifies terminal failures of a run.
type Kind string

const (
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindMalformedArgument Kind = "MALFORMED_ARGUMENT"
	KindExtraction        Kind = "EXTRACTION_FAILURE"
	KindNoTables          Kind = "NO_TABLES_DETECTED"
	KindEngineUnavailable Kind = "ENGINE_UNAVAILABLE"
	KindWrite             Kind = "WRITE_FAILURE"
)

// AppError represents application-specific errors
type AppError struct {
	Kind    Kind
	Message string
	Hint    string // actionable suggestion shown to the user, may be empty
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match an AppError against the sentinel of its kind.
func (e *AppError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMalformedArgument = errors.New("malformed argument")
	ErrExtraction        = errors.New("extraction failed")
	ErrNoTables          = errors.New("no tables detected")
	ErrEngineUnavailable = errors.New("extraction engine unavailable")
	ErrWrite             = errors.New("write failed")
)

var kindSentinels = map[Kind]error{
	KindInvalidInput:      ErrInvalidInput,
	KindMalformedArgument: ErrMalformedArgument,
	KindExtraction:        ErrExtraction,
	KindNoTables:          ErrNoTables,
	KindEngineUnavailable: ErrEngineUnavailable,
	KindWrite:             ErrWrite,
}

var kindExitCodes = map[Kind]int{
	KindInvalidInput:      3,
	KindMalformedArgument: 4,
	KindExtraction:        5,
	KindNoTables:          6,
	KindEngineUnavailable: 7,
	KindWrite:             8,
}

// Error constructors
func NewAppError(kind Kind, message string, cause error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// WithHint returns e with a user-facing suggestion attached.
func (e *AppError) WithHint(hint string) *AppError {
	e.Hint = hint
	return e
}

func InvalidInputError(message string, cause error) *AppError {
	return NewAppError(KindInvalidInput, message, cause)
}

func MalformedArgumentErrorf(example, format string, args ...interface{}) *AppError {
	return NewAppError(KindMalformedArgument, fmt.Sprintf(format, args...), nil).
		WithHint("example: " + example)
}

func ExtractionError(cause error) *AppError {
	return NewAppError(KindExtraction, "extraction engine error", cause)
}

func WriteError(path string, cause error) *AppError {
	return NewAppError(KindWrite, "write "+path, cause)
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

// ExitCode maps err to a process exit code: 0 for nil, a per-kind code for AppErrors,
// 1 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if kind, ok := KindOf(err); ok {
		if code, ok := kindExitCodes[kind]; ok {
			return code
		}
	}
	return 1
}
