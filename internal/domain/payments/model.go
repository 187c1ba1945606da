package payments

import "time"

// Payment is a settlement event: a claim that the member's lunches over
// [StartDate, EndDate] have been paid for. Amount is in minor currency units.
// Payments are append-only; nothing in the system edits or removes one.
type Payment struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	MemberID  string    `gorm:"type:uuid;not null;index"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Amount    int       `gorm:"not null"`
	Note      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Payment) TableName() string { return "payments" }

type ListFilter struct {
	MemberID string
	From     *time.Time
	To       *time.Time
}

type CreatePaymentInput struct {
	MemberID  string
	StartDate time.Time
	EndDate   time.Time
	Amount    int
	Note      *string
}
