package services

import (
	"errors"
	"fmt"

	"postapi/database"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrInvalidPost        = errors.New("invalid post")
	ErrPostConflict       = errors.New("post conflicts with an existing row")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidLimit       = errors.New("limit must not be negative")
)

// translate attaches the matching sentinel to a storage error so callers can
// branch with errors.Is while the driver error stays in the chain.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	switch database.Classify(err) {
	case database.KindNotFound:
		return fmt.Errorf("%s: %w", op, ErrPostNotFound)
	case database.KindInvalid:
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidPost, err)
	case database.KindConflict:
		return fmt.Errorf("%s: %w: %w", op, ErrPostConflict, err)
	case database.KindUnavailable:
		return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
