package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/json2types/internal/pipeline"
	"github.com/usestring/json2types/pkg/document"
	"github.com/usestring/json2types/pkg/infer"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeEmptyInput        = "EMPTY_INPUT"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeDanglingReference = "DANGLING_REFERENCE"
	ErrCodeTooDeep           = "TOO_DEEP"
	ErrCodeCanceled          = "CANCELED"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapInferError converts a pipeline error to a coded error.
func WrapInferError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var (
		parseErr *infer.ParseError
		dangling *infer.DanglingReferenceError
	)
	switch {
	case errors.Is(err, infer.ErrEmptyInput):
		coded = &CodedError{Code: ErrCodeEmptyInput, Message: "nothing to infer from", Cause: err}
	case errors.As(err, &parseErr):
		coded = &CodedError{Code: ErrCodeParseError, Message: fmt.Sprintf("schema %q is not valid JSON", parseErr.Name), Cause: err}
	case errors.As(err, &dangling):
		coded = &CodedError{Code: ErrCodeDanglingReference, Message: fmt.Sprintf("reference %q does not resolve", dangling.Ref), Cause: err}
	case errors.Is(err, infer.ErrTooDeep), errors.Is(err, document.ErrTooDeep):
		coded = &CodedError{Code: ErrCodeTooDeep, Message: "input nests too deeply", Cause: err}
	case errors.Is(err, pipeline.ErrVerifyNeedsSamples):
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "verify is only supported for samples", Cause: err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{Code: ErrCodeCanceled, Message: "request canceled", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: "inference failed", Cause: err}
	}

	slog.Warn("inference error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
