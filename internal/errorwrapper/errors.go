package errorwrapper

import (
	"errors"
	"fmt"
)

// WrapError wraps an error with additional context information
func WrapError(err error, message string) error {
	if err == nil {
		return fmt.Errorf("%s: <nil>", message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// NewError creates a new error with a formatted message
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// FetchError represents a transport-level or HTTP-level fetch failure.
// StatusCode is 0 for transport failures (timeout, DNS, refused connection).
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Wrapped    error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for URL '%s': HTTP %d: %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fetch error for URL '%s': %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Wrapped
}

// NewFetchError creates a fetch error for a transport-level failure
func NewFetchError(url, message string, wrapped error) *FetchError {
	return &FetchError{URL: url, Message: message, Wrapped: wrapped}
}

// NewHTTPFetchError creates a fetch error carrying an HTTP status code
func NewHTTPFetchError(url string, statusCode int, message string) *FetchError {
	return &FetchError{URL: url, StatusCode: statusCode, Message: message}
}

// IsTransient reports whether the fetch failure is worth retrying.
// Transport failures and throttling/server statuses qualify; client
// errors do not.
func (e *FetchError) IsTransient() bool {
	if e.StatusCode == 0 {
		return true
	}
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// ExtractionError represents an unparseable payload
type ExtractionError struct {
	URL     string
	Kind    string
	Message string
	Wrapped error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error for URL '%s' (%s): %s", e.URL, e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Wrapped
}

// NewExtractionError creates a new extraction error
func NewExtractionError(url, kind, message string, wrapped error) *ExtractionError {
	return &ExtractionError{URL: url, Kind: kind, Message: message, Wrapped: wrapped}
}

// SignatureError represents an internal signature invariant violation.
// Callers treat it as a fall-back-to-hash signal rather than fatal.
type SignatureError struct {
	URL     string
	Message string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature error for URL '%s': %s", e.URL, e.Message)
}

// NewSignatureError creates a new signature error
func NewSignatureError(url, message string) *SignatureError {
	return &SignatureError{URL: url, Message: message}
}

// CacheError represents a storage I/O failure on cache read or write
type CacheError struct {
	Op       string // "load" or "save"
	SourceID string
	Wrapped  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s error for source '%s': %v", e.Op, e.SourceID, e.Wrapped)
}

func (e *CacheError) Unwrap() error {
	return e.Wrapped
}

// NewCacheError creates a new cache error
func NewCacheError(op, sourceID string, wrapped error) *CacheError {
	return &CacheError{Op: op, SourceID: sourceID, Wrapped: wrapped}
}

// IsTransientFetchError reports whether err is a FetchError that may be retried
func IsTransientFetchError(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.IsTransient()
	}
	return false
}
