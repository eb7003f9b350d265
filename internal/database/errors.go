package database

import "errors"

var (
	// ErrCarUnavailable means the availability gate rejected a booking.
	ErrCarUnavailable = errors.New("car is not available for booking")

	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrEmailTaken is returned on a duplicate user registration.
	ErrEmailTaken = errors.New("email is already registered")
)
