package entries

import "context"

type Repository interface {
	// ListEntries returns entries ordered by date ascending with the owning
	// member joined in.
	ListEntries(ctx context.Context, filter ListFilter) ([]EntryWithMember, error)
	GetEntryByID(ctx context.Context, entryID string) (*EntryWithMember, error)
	// CreateEntry and UpdateEntry surface a (member_id, date) uniqueness
	// violation as ErrEntryConflict.
	CreateEntry(ctx context.Context, entry *Entry) error
	UpdateEntry(ctx context.Context, entry *Entry) error
	DeleteEntry(ctx context.Context, entryID string) (bool, error)
}
