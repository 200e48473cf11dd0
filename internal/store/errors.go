package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for the specific violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update cannot be applied, for
	// example because the row vanished between read and write.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a transaction fails to commit or
	// an operation inside it fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrProfileNotFound indicates that no learning profile exists for the user.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrStateNotFound indicates that no repetition state exists for the
	// user and topic pair.
	ErrStateNotFound = fmt.Errorf("%w: repetition state", ErrNotFound)

	// ErrAnalyticsNotFound indicates that no analytics snapshot exists for the user.
	ErrAnalyticsNotFound = fmt.Errorf("%w: analytics snapshot", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrStateExists indicates a repetition state already exists for the
	// user and topic pair.
	ErrStateExists = fmt.Errorf("%w: repetition state", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error,
// generic or entity-specific.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
