package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrInvalidDate = errors.New("invalid date")

	ErrCheckInNotBeforeCheckOut = errors.New("check-in is not before check-out")

	ErrCheckInInPast = errors.New("check-in is before today")
)
