package taxonomy

import "errors"

// Sentinel errors for the taxonomy service layer.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrUnknownKind = errors.New("unknown entity kind")
)
