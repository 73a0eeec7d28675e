package identityservice

import "errors"

var (
	// ErrUserNotFound is returned when the user id is unknown.
	ErrUserNotFound = errors.New("identityservice client: user not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("identityservice client: internal error")

	// ErrInvalidResponse is returned on malformed service responses.
	ErrInvalidResponse = errors.New("identityservice client: invalid response")
)
