package service

import "errors"

var (
	// ErrInvalidPrice rejects negative day rates.
	ErrInvalidPrice = errors.New("price per day must not be negative")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrPasswordTooShort = errors.New("password is too short")
)
