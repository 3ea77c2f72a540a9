package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates a transport-level failure (network, timeout).
	ErrUnavailable = errors.New("gateway unavailable")

	// ErrUnauthorized indicates there is no active remote session, or the
	// supplied credentials were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("not found")
)

// UnknownAttributeError reports that the remote schema rejected a write
// because it does not know the named field. The session store uses it to
// drive the reduced-payload retry for optional profile fields.
type UnknownAttributeError struct {
	Field string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute: %s", e.Field)
}
