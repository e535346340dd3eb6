package goals

import "errors"

var (
	// ErrGoalNotFound is returned when the referenced goal ID does not exist
	ErrGoalNotFound = errors.New("savings goal not found")

	// ErrMissingName is returned when creating a goal that should be
	// addressable by transfers without a name.
	ErrMissingName = errors.New("goal name is required")
)
