package members

import (
	"context"
	"errors"

	membersdomain "lunch-ledger-go/internal/domain/members"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListMembers(ctx context.Context) ([]membersdomain.Member, error) {
	var items []membersdomain.Member
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetMemberByID(ctx context.Context, memberID string) (*membersdomain.Member, error) {
	var member membersdomain.Member
	if err := r.db.WithContext(ctx).
		Where("id = ?", memberID).
		First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membersdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) UpdateMember(ctx context.Context, member *membersdomain.Member) error {
	return r.db.WithContext(ctx).
		Model(&membersdomain.Member{}).
		Where("id = ?", member.ID).
		Updates(map[string]interface{}{
			"name":      member.Name,
			"is_active": member.IsActive,
		}).Error
}

// DeleteMember is a hard delete; lunch entries and payments go with it via
// the schema's ON DELETE CASCADE.
func (r *PostgresRepository) DeleteMember(ctx context.Context, memberID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&membersdomain.Member{}, "id = ?", memberID)
	return result.RowsAffected > 0, result.Error
}
