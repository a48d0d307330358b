package services

import "errors"

var (
	// ErrAlreadyRegistered is returned when an account with the email exists.
	ErrAlreadyRegistered = errors.New("email already registered")
	// ErrUnknownEmail is returned when no account matches the login email.
	ErrUnknownEmail = errors.New("unknown email")
	// ErrWrongPassword is returned when the password does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
	// ErrPostNotFound is returned when a post id names nothing.
	ErrPostNotFound = errors.New("post not found")
)
