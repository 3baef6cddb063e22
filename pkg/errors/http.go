package errors

import "net/http"

// HTTPError is a domain error already mapped to its HTTP representation.
type HTTPError struct {
	Code       int
	Kind       Kind
	Message    string
	StatusCode int
	// Data is echoed in the response body, e.g. the current alert status.
	Data any
}

// NewHTTPError returns an HTTPError whose status code equals code.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message, StatusCode: code, Kind: kindForStatus(code)}
}

// NewKindHTTPError returns an HTTPError with an explicit kind.
func NewKindHTTPError(statusCode int, kind Kind, message string) *HTTPError {
	return &HTTPError{Code: statusCode, Kind: kind, Message: message, StatusCode: statusCode}
}

func NewUnauthorizedHTTPError() *HTTPError {
	return NewKindHTTPError(http.StatusUnauthorized, KindUnauthenticated, MessageUnauthorized)
}

func NewForbiddenHTTPError() *HTTPError {
	return NewKindHTTPError(http.StatusForbidden, KindForbidden, MessageForbidden)
}

// WithData returns a copy of e carrying data.
func (e *HTTPError) WithData(data any) *HTTPError {
	cp := *e
	cp.Data = data
	return &cp
}

func (e *HTTPError) Error() string {
	return e.Message
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusBadRequest:
		return KindValidation
	default:
		return KindTransient
	}
}
