package response

import "sos-srv/pkg/errors"

// Resp is the JSON envelope returned by every HTTP handler.
type Resp struct {
	ErrorCode int         `json:"error_code"`
	Kind      errors.Kind `json:"kind,omitempty"`
	Message   string      `json:"message"`
	Data      any         `json:"data,omitempty"`
	Errors    any         `json:"errors,omitempty"`
}

// ErrorMapping maps sentinel errors to their HTTP form.
type ErrorMapping map[error]*errors.HTTPError
