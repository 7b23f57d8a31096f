package task

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTitle is returned when a title is empty after trimming.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrTaskNotFound is returned when no task has the given id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAmbiguousID is returned when an id prefix matches several tasks.
	ErrAmbiguousID = errors.New("ambiguous task id prefix")

	// ErrDuplicateID is returned when restoring a task whose id is already present.
	ErrDuplicateID = errors.New("duplicate task id")

	// ErrCorruptData is returned when the persisted collection cannot be used.
	ErrCorruptData = errors.New("stored tasks are corrupt")
)

// MaxTitleLength is the maximum allowed length for a task title, in bytes.
const MaxTitleLength = 500

// ValidateTitle checks an already-trimmed title.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}
