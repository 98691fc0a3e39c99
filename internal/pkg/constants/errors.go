package constants

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// NonFieldErrors is the key used for validation messages not bound to one field.
const NonFieldErrors = "non_field_errors"

// CodedError carries the HTTP status an error should be rendered with.
type CodedError struct {
	code   int
	msg    string
	fields map[string][]string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

// NewValidationError builds a 400 error with field-level messages.
func NewValidationError(fields map[string][]string) *CodedError {
	return &CodedError{code: http.StatusBadRequest, msg: "validation failed", fields: fields}
}

// NewFieldError is a shortcut for a validation error on a single field.
func NewFieldError(field, msg string) *CodedError {
	return NewValidationError(map[string][]string{field: {msg}})
}

func (e *CodedError) Error() string {
	if len(e.fields) == 0 {
		return e.msg
	}

	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.fields[k], "; ")))
	}
	return fmt.Sprintf("%s (%s)", e.msg, strings.Join(parts, ", "))
}

func (e *CodedError) Code() int {
	return e.code
}

func (e *CodedError) Message() string {
	return e.msg
}

func (e *CodedError) Fields() map[string][]string {
	return e.fields
}

var (
	ErrDBNotFound      = NewCodedError(http.StatusNotFound, "not found")
	ErrUnauthorized    = NewCodedError(http.StatusUnauthorized, "authentication credentials were not provided or are invalid")
	ErrInvalidLogin    = NewCodedError(http.StatusUnauthorized, "no active account found with the given credentials")
	ErrUsernameTaken   = NewFieldError("username", "a user with that username already exists")
	ErrRegionDuplicate = NewFieldError(NonFieldErrors, "the fields name, country must make a unique set")
	ErrUpstream        = NewCodedError(http.StatusBadGateway, "upstream fetch failed")

	ErrLabelNotConfigured = NewCodedError(http.StatusServiceUnavailable, "label analysis is not configured")
	ErrLabelUnavailable   = NewCodedError(http.StatusServiceUnavailable, "AI service temporarily unavailable")
	ErrLabelRateLimited   = NewCodedError(http.StatusServiceUnavailable, "AI service rate limit exceeded, please try again later")
	ErrLabelService       = NewCodedError(http.StatusBadGateway, "AI service error occurred")
	ErrLabelUnreadable    = NewCodedError(http.StatusBadGateway, "could not parse AI response")
	ErrLabelImage         = NewFieldError("image", "invalid image format, supported formats: JPEG, PNG, WebP")
)

// IsNotFound reports whether err is (or wraps) ErrDBNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDBNotFound)
}
