package inventory

import "errors"

var (
	ErrItemNotFound  = errors.New("inventory item not found")
	ErrAlertNotFound = errors.New("inventory alert not found")

	// ErrVersionConflict means the item changed between read and commit.
	// Callers retry the whole adjustment against a fresh read.
	ErrVersionConflict = errors.New("inventory item version conflict")

	// ErrLockNotAcquired means the per-item lock stayed busy through all
	// acquisition attempts.
	ErrLockNotAcquired = errors.New("inventory item is busy, try again later")
)
