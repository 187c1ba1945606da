package entries

import (
	"time"

	"lunch-ledger-go/internal/domain/members"
)

// Entry is one member's lunch record for one calendar day. Price is in minor
// currency units; nil means "use the default meal price at computation time",
// never a stored zero.
type Entry struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	MemberID  string    `gorm:"type:uuid;not null;uniqueIndex:lunch_entries_member_date_key"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:lunch_entries_member_date_key"`
	Quantity  int       `gorm:"not null;default:1"`
	Price     *int      `gorm:"type:integer"`
	Note      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string { return "lunch_entries" }

type EntryWithMember struct {
	Entry
	Member members.Member
}

type ListFilter struct {
	From     *time.Time
	To       *time.Time
	MemberID string
}

type CreateEntryInput struct {
	MemberID string
	Date     time.Time
	Quantity int
	Price    *int
	Note     *string
}

// OptionalInt and OptionalString distinguish "field absent" from "field set to
// null" in partial updates, so a price can be cleared back to the default.
type OptionalInt struct {
	Set   bool
	Value *int
}

type OptionalString struct {
	Set   bool
	Value *string
}

type UpdateEntryInput struct {
	ID       string
	MemberID *string
	Date     *time.Time
	Quantity *int
	Price    OptionalInt
	Note     OptionalString
}
