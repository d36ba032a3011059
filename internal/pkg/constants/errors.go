package constants

import "net/http"

// CodedError is an error that carries the HTTP status code it should be
// reported with. The api error handler unwraps down to the first CodedError.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound        = NewCodedError(http.StatusNotFound, "not found")
	ErrScopeMismatch     = NewCodedError(http.StatusBadRequest, "selection does not match the administrative hierarchy")
	ErrUnknownIndicator  = NewCodedError(http.StatusBadRequest, "unknown indicator")
	ErrDataUnavailable   = NewCodedError(http.StatusServiceUnavailable, "data unavailable")
	ErrUnauthorized      = NewCodedError(http.StatusUnauthorized, "unauthorized")
	ErrMissingAuthCookie = NewCodedError(http.StatusUnauthorized, "missing auth cookie")
)
