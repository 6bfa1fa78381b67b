// Package errors defines the typed errors gradesync returns. Each type maps
// onto a sentinel so callers can branch with errors.Is instead of matching
// message text.
package errors

import (
	"errors"
	"fmt"
)

// Forwarded from the standard library so callers need only this package.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

// Sentinels matched by the typed errors below.
var (
	// ErrNotFound: the LMS has no such course, assignment or topic.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput: a flag, config value or dataset failed validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired: no token or key is configured.
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrAPIKeyInvalid: the remote side rejected the token or key.
	ErrAPIKeyInvalid = errors.New("API key invalid")

	// ErrProviderUnavailable: the LMS or model API answered with a 5xx.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited: the remote side answered 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrCanceled: the run's context was canceled mid-operation.
	ErrCanceled = errors.New("operation canceled")

	// ErrDuplicateID: a local dataset lists one student identifier twice.
	ErrDuplicateID = errors.New("duplicate identifier")
)

// ValidationError is a rejected flag, config value or dataset shape.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// Is matches ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// DuplicateError names an identifier found on more than one dataset row.
type DuplicateError struct {
	Source string
	ID     string
	Rows   []int
}

func (e *DuplicateError) Error() string {
	if len(e.Rows) > 0 {
		return fmt.Sprintf("duplicate identifier %q in %s (rows %v)", e.ID, e.Source, e.Rows)
	}
	return fmt.Sprintf("duplicate identifier %q in %s", e.ID, e.Source)
}

// Is matches ErrDuplicateID.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicateID
}

// APIError is a failed call to the LMS or a model provider. The status code
// decides which sentinel it matches.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is maps 401, 404, 429 and 5xx onto sentinels.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 401:
		return target == ErrAPIKeyInvalid
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrProviderUnavailable
	}
	return false
}

// NewAPIError creates an APIError without a cause.
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{Provider: provider, StatusCode: statusCode, Message: message}
}

// ConfigError is a missing or malformed setting, e.g. canvas_api_url.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return "configuration error: " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidInput.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigError creates a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError is undecodable input: an API body, a model reply or a sheet.
type ParseError struct {
	Format  string // json, csv, xlsx
	File    string // file path or a description such as "response body"
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError.
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError is a failed filesystem operation on a dataset or report.
type IOError struct {
	Operation string // read, write, create, rename
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, msg)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, msg)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// AuthenticationError is a missing or rejected credential.
type AuthenticationError struct {
	Provider string
	Method   string // api_key, bearer
	Message  string
	Err      error
}

func (e *AuthenticationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Provider, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is matches both API key sentinels.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired || target == ErrAPIKeyInvalid
}

// NewAuthenticationError creates an AuthenticationError.
func NewAuthenticationError(provider, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{Provider: provider, Method: method, Message: message, Err: err}
}

// IsNotFound reports whether err matches ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidationError reports whether err matches ErrInvalidInput.
func IsValidationError(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsAPIKeyError reports a missing or rejected credential.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsRateLimited reports whether err matches ErrRateLimited.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsCanceled reports whether err matches ErrCanceled.
func IsCanceled(err error) bool { return errors.Is(err, ErrCanceled) }

// IsProviderUnavailable reports whether err matches ErrProviderUnavailable.
func IsProviderUnavailable(err error) bool { return errors.Is(err, ErrProviderUnavailable) }

// IsDuplicate reports whether err matches ErrDuplicateID.
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicateID) }

// WrapIO wraps err as an IOError; nil stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps err as a ParseError; nil stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps err as an APIError; nil stays nil.
func WrapAPI(provider string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Provider: provider, StatusCode: statusCode, Message: err.Error(), Err: err}
}
