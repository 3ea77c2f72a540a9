// Package common defines shared helpers and sentinel errors used across
// the Foody client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrValidation covers caller-supplied input the stores refuse to send
	// remotely (empty or too-short name, empty cart at checkout).
	ErrValidation = errors.New("validation error")

	// ErrNotAuthenticated is returned by profile mutations when no user is
	// signed in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidQuantity is returned when a quantity cannot be parsed as an
	// integer.
	ErrInvalidQuantity = errors.New("invalid quantity")
)
