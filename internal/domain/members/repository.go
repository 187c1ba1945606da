package members

import "context"

type Repository interface {
	ListMembers(ctx context.Context) ([]Member, error)
	GetMemberByID(ctx context.Context, memberID string) (*Member, error)
	CreateMember(ctx context.Context, member *Member) error
	UpdateMember(ctx context.Context, member *Member) error
	DeleteMember(ctx context.Context, memberID string) (bool, error)
}
