package port

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response from the catalog API. It
// preserves the HTTP status code so callers can distinguish a conflict on
// create (retry as update) from other failures.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// statusIs reports whether err is an APIError with the given status code.
func statusIs(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// IsConflict reports whether err is a 409 response, meaning a resource with
// the same identifier already exists.
func IsConflict(err error) bool {
	return statusIs(err, http.StatusConflict)
}

// IsGone reports whether err is a 410 response. The actions endpoint answers
// 410 for blueprints that have no actions configured.
func IsGone(err error) bool {
	return statusIs(err, http.StatusGone)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}
