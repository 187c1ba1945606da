package entries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListEntries(ctx context.Context, filter ListFilter) ([]EntryWithMember, error) {
	items, err := s.repo.ListEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []EntryWithMember{}
	}
	return items, nil
}

func (s *Service) GetEntry(ctx context.Context, entryID string) (*EntryWithMember, error) {
	return s.repo.GetEntryByID(ctx, entryID)
}

func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (*EntryWithMember, error) {
	entry := Entry{
		ID:       uuid.NewString(),
		MemberID: input.MemberID,
		Date:     dateOnly(input.Date),
		Quantity: normalizeQuantity(input.Quantity),
		Price:    input.Price,
		Note:     input.Note,
	}

	if err := s.repo.CreateEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return s.repo.GetEntryByID(ctx, entry.ID)
}

func (s *Service) UpdateEntry(ctx context.Context, input UpdateEntryInput) (*EntryWithMember, error) {
	existing, err := s.repo.GetEntryByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	entry := existing.Entry
	if input.MemberID != nil {
		entry.MemberID = *input.MemberID
	}
	if input.Date != nil {
		entry.Date = dateOnly(*input.Date)
	}
	if input.Quantity != nil {
		entry.Quantity = normalizeQuantity(*input.Quantity)
	}
	if input.Price.Set {
		entry.Price = input.Price.Value
	}
	if input.Note.Set {
		entry.Note = input.Note.Value
	}

	if err := s.repo.UpdateEntry(ctx, &entry); err != nil {
		return nil, err
	}
	return s.repo.GetEntryByID(ctx, entry.ID)
}

func (s *Service) DeleteEntry(ctx context.Context, entryID string) error {
	deleted, err := s.repo.DeleteEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrEntryNotFound
	}
	return nil
}

// normalizeQuantity coerces omitted or non-positive quantities to one portion.
func normalizeQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
