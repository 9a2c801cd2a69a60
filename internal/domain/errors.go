package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Resolution errors abort the request.
	CodeUpstreamFetch  ErrorCode = "UPSTREAM_FETCH_ERROR"
	CodeUpstreamFormat ErrorCode = "UPSTREAM_FORMAT_ERROR"

	CodeUnsupportedItemShape ErrorCode = "UNSUPPORTED_ITEM_SHAPE"
	CodeGeneration           ErrorCode = "GENERATION_ERROR"
	CodeBackendUnavailable   ErrorCode = "BACKEND_UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// WithContext attaches a diagnostic key/value to the error and returns it.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewUpstreamFetchError reports that the media info provider could not resolve a reference.
func NewUpstreamFetchError(url string, cause error) *DomainError {
	return NewError(CodeUpstreamFetch, "media provider could not resolve the video reference", cause).
		WithContext("url", url)
}

// NewUpstreamFormatError reports a provider response lacking the expected fields.
func NewUpstreamFormatError(url string, detail string, cause error) *DomainError {
	return NewError(CodeUpstreamFormat, "media provider returned an unexpected response: "+detail, cause).
		WithContext("url", url)
}

func NewUnsupportedItemShapeError(index int, detail string) *DomainError {
	return NewError(CodeUnsupportedItemShape, fmt.Sprintf("unsupported video item at index %d: %s", index, detail), nil).
		WithContext("index", index)
}

func NewGenerationError(backend string, cause error) *DomainError {
	return NewError(CodeGeneration, "generation backend call failed", cause).
		WithContext("backend", backend)
}

func NewBackendUnavailableError(name string) *DomainError {
	return NewError(CodeBackendUnavailable, fmt.Sprintf("%s is not configured", name), nil)
}

// HasCode reports whether err is, or wraps, a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// ValidationError describes one invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every rejected field of a request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Code: CodeMissingField, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}, allowed ...string) ValidationError {
	msg := "invalid value"
	if len(allowed) > 0 {
		msg = "must be one of: " + strings.Join(allowed, ", ")
	}
	return ValidationError{Field: field, Code: CodeInvalidFormat, Message: msg, Value: value}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeOutOfRange,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}
