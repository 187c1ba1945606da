package debt

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lunch-ledger-go/internal/domain/entries"
	"lunch-ledger-go/internal/domain/payments"
	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	defaultMealPrice = 30000
	defaultLocale    = "vi"
)

type EntrySource interface {
	ListEntries(ctx context.Context, filter entries.ListFilter) ([]entries.EntryWithMember, error)
	GetEntryByID(ctx context.Context, entryID string) (*entries.EntryWithMember, error)
}

type PaymentSource interface {
	ListPayments(ctx context.Context, filter payments.ListFilter) ([]payments.Payment, error)
	CreatePayment(ctx context.Context, payment *payments.Payment) error
}

type Config struct {
	Policy           Policy
	DefaultMealPrice int
	// Locale is a BCP-47 tag used for member-name ordering in reports.
	Locale string
}

// Service is the reconciliation engine. Reconciliation itself is a pure fold
// over a point-in-time snapshot of entries and payments; the only write path
// is Settle.
type Service struct {
	entries   EntrySource
	payments  PaymentSource
	policy    Policy
	mealPrice int
	collation language.Tag
}

func NewService(entrySource EntrySource, paymentSource PaymentSource) *Service {
	return NewServiceWithConfig(entrySource, paymentSource, Config{})
}

func NewServiceWithConfig(entrySource EntrySource, paymentSource PaymentSource, cfg Config) *Service {
	cfg = normalizeConfig(cfg)

	return &Service{
		entries:   entrySource,
		payments:  paymentSource,
		policy:    cfg.Policy,
		mealPrice: cfg.DefaultMealPrice,
		collation: language.Make(cfg.Locale),
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.Policy == "" {
		cfg.Policy = PolicyMilestone
	}
	if cfg.DefaultMealPrice <= 0 {
		cfg.DefaultMealPrice = defaultMealPrice
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	return cfg
}

// Policy exposes the active paid-status policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// DefaultMealPrice is the process-wide fallback applied when a request does
// not supply a meal price.
func (s *Service) DefaultMealPrice() int {
	return s.mealPrice
}

// ComputeWeeklyDebt aggregates unpaid meals and amounts per member over
// [from, to] inclusive. Members with nothing unpaid in range are omitted.
// An empty range is a valid result, not an error.
func (s *Service) ComputeWeeklyDebt(ctx context.Context, from, to time.Time, mealPrice int) (Report, error) {
	if from.IsZero() || to.IsZero() {
		return Report{}, ErrMissingRange
	}
	price := s.resolveMealPrice(mealPrice)

	items, err := s.entries.ListEntries(ctx, entries.ListFilter{From: &from, To: &to})
	if err != nil {
		return Report{}, err
	}

	// All payments, not just those touching the range: under the milestone
	// policy a payment dated outside the query window still moves the
	// member's watermark.
	allPayments, err := s.payments.ListPayments(ctx, payments.ListFilter{})
	if err != nil {
		return Report{}, err
	}

	debts := s.aggregateUnpaid(items, allPayments, price)

	total := 0
	for _, d := range debts {
		total += d.TotalAmount
	}

	return Report{
		StartDate:   from,
		EndDate:     to,
		MealPrice:   price,
		Debts:       debts,
		TotalAmount: total,
	}, nil
}

// CheckEntryPaid derives the paid flag for a single entry under the active
// policy.
func (s *Service) CheckEntryPaid(ctx context.Context, entryID string) (bool, error) {
	entry, err := s.entries.GetEntryByID(ctx, entryID)
	if err != nil {
		return false, err
	}

	memberPayments, err := s.payments.ListPayments(ctx, payments.ListFilter{MemberID: entry.MemberID})
	if err != nil {
		return false, err
	}

	return entryPaid(s.policy, entry.Date, memberPayments), nil
}

// MemberReport lists one member's entries in range, date ascending, each
// annotated with its paid flag and amount. Same policy, same price resolution
// as ComputeWeeklyDebt, so statement and debt summary can never disagree.
func (s *Service) MemberReport(ctx context.Context, memberID string, from, to time.Time, mealPrice int) ([]StatementEntry, error) {
	if from.IsZero() || to.IsZero() {
		return nil, ErrMissingRange
	}
	price := s.resolveMealPrice(mealPrice)

	items, err := s.entries.ListEntries(ctx, entries.ListFilter{MemberID: memberID, From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	memberPayments, err := s.payments.ListPayments(ctx, payments.ListFilter{MemberID: memberID})
	if err != nil {
		return nil, err
	}

	statement := make([]StatementEntry, 0, len(items))
	for _, item := range items {
		statement = append(statement, StatementEntry{
			Entry:  item,
			IsPaid: entryPaid(s.policy, item.Date, memberPayments),
			Amount: item.Quantity * effectivePrice(item.Entry, price),
		})
	}

	return statement, nil
}

// Settle records a payment covering a member's computed debt: startDate is the
// query range start, endDate the user-chosen payment end date, amount the
// member's unpaid total over the query range. Once stored it changes every
// subsequent reconciliation for that member.
func (s *Service) Settle(ctx context.Context, input SettleInput) (*payments.Payment, error) {
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.PaymentEndDate.IsZero() {
		return nil, ErrMissingRange
	}

	start := dateOnly(input.StartDate)
	end := dateOnly(input.EndDate)
	paidThrough := dateOnly(input.PaymentEndDate)

	if paidThrough.Before(start) {
		return nil, payments.ErrInvalidRange
	}

	report, err := s.ComputeWeeklyDebt(ctx, start, end, input.MealPrice)
	if err != nil {
		return nil, err
	}

	var memberDebt *WeeklyDebt
	for i := range report.Debts {
		if report.Debts[i].MemberID == input.MemberID {
			memberDebt = &report.Debts[i]
			break
		}
	}
	if memberDebt == nil || memberDebt.TotalAmount <= 0 {
		return nil, ErrNoOutstandingDebt
	}

	note := fmt.Sprintf("debt settlement %s to %s", start.Format("2006-01-02"), paidThrough.Format("2006-01-02"))
	payment := payments.Payment{
		ID:        uuid.NewString(),
		MemberID:  input.MemberID,
		StartDate: start,
		EndDate:   paidThrough,
		Amount:    memberDebt.TotalAmount,
		Note:      &note,
	}

	if err := s.payments.CreatePayment(ctx, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// aggregateUnpaid is the reconciliation fold: paid entries drop out, the rest
// accumulate into per-member totals, ordered by collated member name.
func (s *Service) aggregateUnpaid(items []entries.EntryWithMember, allPayments []payments.Payment, price int) []WeeklyDebt {
	paid := paidEntryIDs(s.policy, items, allPayments)

	byMember := make(map[string]WeeklyDebt)
	for _, item := range items {
		if _, ok := paid[item.ID]; ok {
			continue
		}
		d := byMember[item.MemberID]
		if d.MemberID == "" {
			d.MemberID = item.MemberID
			d.MemberName = item.Member.Name
		}
		d.TotalMeals += item.Quantity
		d.TotalAmount += item.Quantity * effectivePrice(item.Entry, price)
		byMember[item.MemberID] = d
	}

	debts := make([]WeeklyDebt, 0, len(byMember))
	for _, d := range byMember {
		debts = append(debts, d)
	}

	// Collators keep internal buffers, so build one per call.
	c := collate.New(s.collation, collate.IgnoreCase)
	sort.SliceStable(debts, func(i, j int) bool {
		return c.CompareString(debts[i].MemberName, debts[j].MemberName) < 0
	})

	return debts
}

func (s *Service) resolveMealPrice(mealPrice int) int {
	if mealPrice <= 0 {
		return s.mealPrice
	}
	return mealPrice
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
