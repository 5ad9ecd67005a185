package admin

import "errors"

// Sentinel errors for the admin service layer.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfAction   = errors.New("admins cannot deactivate or delete their own account")
)
