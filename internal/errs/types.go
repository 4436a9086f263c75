// Package errs defines the error types returned to API clients.
//
// Every failure that crosses the HTTP boundary is an *HTTPError. The global
// error handler renders it into the response envelope, which carries a single
// human-readable message; field errors are folded into that message.
package errs

import (
	"strings"
)

// FieldError is a validation failure tied to one request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the application error type understood by the error handler.
//
// Override marks messages that are safe to show to the client verbatim
// (for example "A user with this username already exists").
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError so callers can use errors.Is(err, &HTTPError{}).
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// ClientMessage is the text written to the envelope's "errors" field.
// Field errors are appended as "field: reason" pairs.
func (e *HTTPError) ClientMessage() string {
	if len(e.Errors) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Error)
	}

	return e.Message + ": " + strings.Join(parts, ", ")
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
