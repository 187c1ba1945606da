package payments

import (
	"context"
	"errors"

	membersdomain "lunch-ledger-go/internal/domain/members"
	paymentsdomain "lunch-ledger-go/internal/domain/payments"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgForeignKeyViolation = "23503"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListPayments(ctx context.Context, filter paymentsdomain.ListFilter) ([]paymentsdomain.Payment, error) {
	query := r.db.WithContext(ctx).Model(&paymentsdomain.Payment{})

	if filter.MemberID != "" {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.From != nil {
		query = query.Where("start_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("end_date <= ?", *filter.To)
	}

	var items []paymentsdomain.Payment
	if err := query.
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) CreatePayment(ctx context.Context, payment *paymentsdomain.Payment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return membersdomain.ErrMemberNotFound
	}
	return err
}
