package members

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListMembers(ctx context.Context) ([]Member, error) {
	items, err := s.repo.ListMembers(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Member{}
	}
	return items, nil
}

func (s *Service) GetMember(ctx context.Context, memberID string) (*Member, error) {
	return s.repo.GetMemberByID(ctx, memberID)
}

func (s *Service) CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	member := Member{
		ID:       uuid.NewString(),
		Name:     name,
		IsActive: isActive,
	}

	if err := s.repo.CreateMember(ctx, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *Service) UpdateMember(ctx context.Context, input UpdateMemberInput) (*Member, error) {
	member, err := s.repo.GetMemberByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		member.Name = name
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// DeleteMember is a hard delete; the schema cascades it to the member's lunch
// entries and payments.
func (s *Service) DeleteMember(ctx context.Context, memberID string) error {
	deleted, err := s.repo.DeleteMember(ctx, memberID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMemberNotFound
	}
	return nil
}
