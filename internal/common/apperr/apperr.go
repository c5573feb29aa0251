package apperr

import "errors"

// Sentinel errors for the access and lifecycle layer. Read paths translate
// ErrUnauthenticated and ErrAccessDenied into empty result sets; write paths
// surface them as rejections.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrAccessDenied    = errors.New("access denied")
	ErrNotFound        = errors.New("not found")

	// ErrInconsistent marks an invariant violation, e.g. a resolved
	// identity with no backing user record. Not recoverable locally.
	ErrInconsistent = errors.New("internal inconsistency")
)

// HTTPStatus maps a domain error to the status code controllers respond with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return 401
	case errors.Is(err, ErrAccessDenied):
		return 403
	case errors.Is(err, ErrNotFound):
		return 404
	default:
		return 500
	}
}
