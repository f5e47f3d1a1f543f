package common

import (
	"errors"
	"fmt"
)

// Fatal run conditions, one sentinel per failure class. Every abort wraps
// one of these so callers can map it to an exit code or HTTP status.
var (
	ErrInputShape = errors.New("input shape error")
	ErrExtraction = errors.New("extraction error")
	ErrConfig     = errors.New("configuration error")
	ErrResolution = errors.New("resolution error")
)

// AppError pairs a stable machine code with a human message while keeping
// the underlying sentinel reachable through errors.Is.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Err: cause}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError prefixes err with message, passing nil through untouched.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ExitCode maps a fatal error to the process exit status: configuration
// errors exit 2 (usage), everything else exits 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, ErrConfig) {
		return 2
	}
	return 1
}
