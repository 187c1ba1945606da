package debt

import (
	"time"

	"lunch-ledger-go/internal/domain/entries"
)

// WeeklyDebt is a derived aggregate, recomputed on every query and never
// stored: the unpaid meal count and amount for one member over a date range.
type WeeklyDebt struct {
	MemberID    string `json:"memberId"`
	MemberName  string `json:"memberName"`
	TotalMeals  int    `json:"totalMeals"`
	TotalAmount int    `json:"totalAmount"`
}

// Report is the full weekly-debt answer: per-member aggregates ordered by
// member name plus the grand total across members.
type Report struct {
	StartDate   time.Time
	EndDate     time.Time
	MealPrice   int
	Debts       []WeeklyDebt
	TotalAmount int
}

// StatementEntry is one row of a member statement: the entry annotated with
// its paid status and the amount it contributes (quantity × effective price).
type StatementEntry struct {
	Entry  entries.EntryWithMember
	IsPaid bool
	Amount int
}

type SettleInput struct {
	MemberID       string
	StartDate      time.Time
	EndDate        time.Time
	PaymentEndDate time.Time
	MealPrice      int
}
