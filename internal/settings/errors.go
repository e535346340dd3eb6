package settings

import "errors"

var (
	// ErrEmptyName is returned when adding a blank entry
	ErrEmptyName = errors.New("name must not be blank")

	// ErrDuplicateEntry is returned when the entry already exists in the list
	ErrDuplicateEntry = errors.New("entry already exists")

	// ErrEntryInUse is returned when removing an entry still referenced by a
	// transaction row. Treated as a silent refusal at the boundary.
	ErrEntryInUse = errors.New("entry is referenced by a transaction")

	// ErrMinimumEntries is returned when removing the last remaining entry
	ErrMinimumEntries = errors.New("list must keep at least one entry")

	// ErrEntryNotFound is returned when the entry is not in the list
	ErrEntryNotFound = errors.New("entry not found")
)
