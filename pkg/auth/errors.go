package auth

import "errors"

var (
	ErrMissingToken = errors.New("auth: missing session token")

	ErrInvalidToken = errors.New("auth: invalid session token")

	ErrUserNotFound = errors.New("auth: user not found")

	ErrDirectoryUnauthorized = errors.New("auth: directory rejected credentials")
)
