package entries

import (
	"context"
	"errors"
	"time"

	entriesdomain "lunch-ledger-go/internal/domain/entries"
	membersdomain "lunch-ledger-go/internal/domain/members"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// entryWithMemberRow is the flat shape of the lunch_entries ⋈ members join.
type entryWithMemberRow struct {
	ID              string
	MemberID        string
	Date            time.Time
	Quantity        int
	Price           *int
	Note            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	MemberName      string
	MemberIsActive  bool
	MemberCreatedAt time.Time
	MemberUpdatedAt time.Time
}

const entryWithMemberSelect = "lunch_entries.*, " +
	"members.name AS member_name, members.is_active AS member_is_active, " +
	"members.created_at AS member_created_at, members.updated_at AS member_updated_at"

func (r *PostgresRepository) ListEntries(ctx context.Context, filter entriesdomain.ListFilter) ([]entriesdomain.EntryWithMember, error) {
	query := r.db.WithContext(ctx).
		Table("lunch_entries").
		Select(entryWithMemberSelect).
		Joins("JOIN members ON members.id = lunch_entries.member_id")

	if filter.MemberID != "" {
		query = query.Where("lunch_entries.member_id = ?", filter.MemberID)
	}
	if filter.From != nil {
		query = query.Where("lunch_entries.date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("lunch_entries.date <= ?", *filter.To)
	}

	var rows []entryWithMemberRow
	if err := query.
		Order("lunch_entries.date asc, lunch_entries.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entriesdomain.EntryWithMember, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toDomain())
	}
	return items, nil
}

func (r *PostgresRepository) GetEntryByID(ctx context.Context, entryID string) (*entriesdomain.EntryWithMember, error) {
	var rows []entryWithMemberRow
	if err := r.db.WithContext(ctx).
		Table("lunch_entries").
		Select(entryWithMemberSelect).
		Joins("JOIN members ON members.id = lunch_entries.member_id").
		Where("lunch_entries.id = ?", entryID).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, entriesdomain.ErrEntryNotFound
	}

	item := rows[0].toDomain()
	return &item, nil
}

func (r *PostgresRepository) CreateEntry(ctx context.Context, entry *entriesdomain.Entry) error {
	return mapConstraintError(r.db.WithContext(ctx).Create(entry).Error)
}

func (r *PostgresRepository) UpdateEntry(ctx context.Context, entry *entriesdomain.Entry) error {
	err := r.db.WithContext(ctx).
		Model(&entriesdomain.Entry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]interface{}{
			"member_id": entry.MemberID,
			"date":      entry.Date,
			"quantity":  entry.Quantity,
			"price":     entry.Price,
			"note":      entry.Note,
		}).Error
	return mapConstraintError(err)
}

func (r *PostgresRepository) DeleteEntry(ctx context.Context, entryID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entriesdomain.Entry{}, "id = ?", entryID)
	return result.RowsAffected > 0, result.Error
}

// mapConstraintError turns the (member_id, date) unique violation into the
// domain conflict error and a dangling member reference into not-found;
// anything else propagates as an opaque storage failure.
func mapConstraintError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return entriesdomain.ErrEntryConflict
		case pgForeignKeyViolation:
			return membersdomain.ErrMemberNotFound
		}
	}
	return err
}

func (row entryWithMemberRow) toDomain() entriesdomain.EntryWithMember {
	return entriesdomain.EntryWithMember{
		Entry: entriesdomain.Entry{
			ID:        row.ID,
			MemberID:  row.MemberID,
			Date:      row.Date,
			Quantity:  row.Quantity,
			Price:     row.Price,
			Note:      row.Note,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		},
		Member: membersdomain.Member{
			ID:        row.MemberID,
			Name:      row.MemberName,
			IsActive:  row.MemberIsActive,
			CreatedAt: row.MemberCreatedAt,
			UpdatedAt: row.MemberUpdatedAt,
		},
	}
}
