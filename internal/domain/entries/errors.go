package entries

import "errors"

var (
	ErrEntryNotFound = errors.New("lunch entry not found")
	// ErrEntryConflict reports a second entry for the same (member, date) pair.
	ErrEntryConflict = errors.New("member already has an entry for this date")
)
