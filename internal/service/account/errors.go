package account

import "errors"

// Sentinel errors for the account service layer.
var (
	// ErrNotFound signals a missing singleton row; callers inside this
	// package treat it as "create now".
	ErrNotFound = errors.New("record not found")

	// ErrConflict signals a unique-constraint race on first access; the
	// loser of the race re-reads the winner's row.
	ErrConflict = errors.New("record already exists")
)
