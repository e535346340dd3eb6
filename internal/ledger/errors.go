package ledger

import "errors"

var (
	// ErrRowNotFound is returned when the referenced row ID is not in the ledger
	ErrRowNotFound = errors.New("transaction row not found")

	// ErrMinimumRows is returned when removing the last remaining row of a
	// ledger that does not support an empty state. Callers treat it as a
	// silent refusal, not a failure.
	ErrMinimumRows = errors.New("ledger must keep at least one row")

	// ErrUnknownSection is returned for section names outside income/fixed/discretionary
	ErrUnknownSection = errors.New("unknown ledger section")
)
