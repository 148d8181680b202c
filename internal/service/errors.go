package service

import "errors"

// Service error taxonomy. Handlers map these onto HTTP statuses; anything
// else is treated as a persistence failure (500).
var (
	// ErrValidation marks missing or malformed input.
	ErrValidation = errors.New("validation error")

	// ErrUnauthenticated is returned when no valid session resolves to a user.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden is returned on ownership or role mismatch.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when a targeted resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrInvalidCredentials is returned on login with an unknown user or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
