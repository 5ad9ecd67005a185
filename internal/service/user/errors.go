package user

import "errors"

// Sentinel errors for the user service layer.
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDeactivated        = errors.New("account is deactivated")
)
