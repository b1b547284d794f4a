package inventory

import "errors"

var (
	ErrDuplicateKey      = errors.New("inventory: duplicate key")
	ErrNotFound          = errors.New("inventory: not found")
	ErrStoreUnavailable  = errors.New("inventory: store unavailable")
	ErrUnknownFormat     = errors.New("inventory: unknown export format")
	ErrSubprocessFailure = errors.New("inventory: subprocess failed")

	// surface validation
	ErrInvalidInput   = errors.New("inventory: invalid input")
	ErrInvalidOptions = errors.New("inventory: invalid options")
)
