package apperrors

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrNotSignedIn        = errors.New("no account is signed in")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyExists      = errors.New("account already exists")
	ErrSignInPending      = errors.New("a sign-in attempt is already in progress")
	ErrValidationFailed   = errors.New("university and course are required")
)
