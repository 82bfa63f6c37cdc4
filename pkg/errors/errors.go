package errors

import "fmt"

// ErrorType represents the different failure classes of the auto-scroller
type ErrorType string

const (
	ErrorTypeNoActiveDocument ErrorType = "no_active_document"
	ErrorTypeNotRunning       ErrorType = "not_running"
	ErrorTypeAnnotationIO     ErrorType = "annotation_io"
	ErrorTypeUpdateCheck      ErrorType = "update_check"
	ErrorTypeNetwork          ErrorType = "network"
	ErrorTypeRateLimit        ErrorType = "rate_limit"
	ErrorTypeParsing          ErrorType = "parsing"
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeServerError      ErrorType = "server_error"
	ErrorTypeConfig           ErrorType = "config"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// Error is a typed error. Code carries an HTTP status where one applies.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error", e.Type)
	if e.Code != 0 {
		msg = fmt.Sprintf("%s (code %d)", msg, e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same type, so sentinels like
// ErrNoActiveDocument match any error of that class.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// Sentinels for errors.Is checks
var (
	ErrNoActiveDocument = &Error{Type: ErrorTypeNoActiveDocument, Message: "no focused document"}
	ErrNotRunning       = &Error{Type: ErrorTypeNotRunning, Message: "auto-scroll is not running"}
	ErrAnnotationIO     = &Error{Type: ErrorTypeAnnotationIO}
	ErrUpdateCheck      = &Error{Type: ErrorTypeUpdateCheck}
)

// New creates a typed error
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Wrap creates a typed error around a cause
func Wrap(errorType ErrorType, err error, message string) *Error {
	return &Error{Type: errorType, Message: message, Err: err}
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeRateLimit, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

// IsRetryableStatusCode checks if an HTTP status code indicates a retryable error
func IsRetryableStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429:
		return true
	case 401, 403, 404:
		return false
	default:
		return statusCode >= 500
	}
}

// TypeForStatus maps an HTTP status code to an error type
func TypeForStatus(statusCode int) ErrorType {
	switch {
	case statusCode == 0:
		return ErrorTypeNetwork
	case statusCode == 429:
		return ErrorTypeRateLimit
	case statusCode == 404:
		return ErrorTypeNotFound
	case statusCode >= 500:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}
