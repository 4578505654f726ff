package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated means the visitor has no usable credentials: either no
// tokens were stored, or the single refresh attempt failed and the stored
// tokens were cleared. Handlers redirect to /login on this error.
var ErrUnauthenticated = errors.New("not authenticated")

// Error carries the backend's status code and its error payload verbatim
// (the `detail` field, or the envelope message when no detail is present).
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("backend: status %d", e.Status)
}

// Detail extracts the backend's message from an error, falling back to a
// generic string for transport failures.
func Detail(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Detail != "" {
		return ae.Detail
	}
	return "Something went wrong. Please try again."
}

func statusIs(err error, code int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == code
}

// IsConflict reports a 409, e.g. a duplicate review for the same product.
func IsConflict(err error) bool { return statusIs(err, http.StatusConflict) }

func IsNotFound(err error) bool { return statusIs(err, http.StatusNotFound) }
