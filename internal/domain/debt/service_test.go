package debt

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"lunch-ledger-go/internal/domain/entries"
	"lunch-ledger-go/internal/domain/members"
	"lunch-ledger-go/internal/domain/payments"
)

type fakeEntrySource struct {
	items []entries.EntryWithMember
}

func (f *fakeEntrySource) ListEntries(ctx context.Context, filter entries.ListFilter) ([]entries.EntryWithMember, error) {
	result := make([]entries.EntryWithMember, 0)
	for _, item := range f.items {
		if filter.MemberID != "" && item.MemberID != filter.MemberID {
			continue
		}
		if filter.From != nil && item.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && item.Date.After(*filter.To) {
			continue
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (f *fakeEntrySource) GetEntryByID(ctx context.Context, entryID string) (*entries.EntryWithMember, error) {
	for _, item := range f.items {
		if item.ID == entryID {
			found := item
			return &found, nil
		}
	}
	return nil, entries.ErrEntryNotFound
}

type fakePaymentSource struct {
	items []payments.Payment
}

func (f *fakePaymentSource) ListPayments(ctx context.Context, filter payments.ListFilter) ([]payments.Payment, error) {
	result := make([]payments.Payment, 0)
	for _, item := range f.items {
		if filter.MemberID != "" && item.MemberID != filter.MemberID {
			continue
		}
		if filter.From != nil && item.StartDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && item.EndDate.After(*filter.To) {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

func (f *fakePaymentSource) CreatePayment(ctx context.Context, payment *payments.Payment) error {
	f.items = append(f.items, *payment)
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func entryWithMember(id, memberID, memberName string, day time.Time, quantity int, price *int) entries.EntryWithMember {
	return entries.EntryWithMember{
		Entry: entries.Entry{
			ID:       id,
			MemberID: memberID,
			Date:     day,
			Quantity: quantity,
			Price:    price,
		},
		Member: members.Member{ID: memberID, Name: memberName, IsActive: true},
	}
}

func newTestService(policy Policy, entrySource *fakeEntrySource, paymentSource *fakePaymentSource) *Service {
	return NewServiceWithConfig(entrySource, paymentSource, Config{
		Policy:           policy,
		DefaultMealPrice: 30000,
	})
}

func TestComputeWeeklyDebtNoPayments(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("e1", "m1", "An", date(2024, time.January, 1), 1, nil),
		entryWithMember("e2", "m1", "An", date(2024, time.January, 8), 2, intPtr(50000)),
	}}
	service := newTestService(PolicyMilestone, entrySource, &fakePaymentSource{})

	report, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.January, 1), date(2024, time.January, 8), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Debts) != 1 {
		t.Fatalf("expected 1 debt, got %d", len(report.Debts))
	}
	debt := report.Debts[0]
	if debt.MemberName != "An" || debt.TotalMeals != 3 {
		t.Fatalf("unexpected debt: %+v", debt)
	}
	// 1 × default 30000 + 2 × 50000
	if debt.TotalAmount != 130000 {
		t.Fatalf("expected amount 130000, got %d", debt.TotalAmount)
	}
	if report.TotalAmount != 130000 {
		t.Fatalf("expected grand total 130000, got %d", report.TotalAmount)
	}
	if report.MealPrice != 30000 {
		t.Fatalf("expected default meal price 30000, got %d", report.MealPrice)
	}
}

func TestComputeWeeklyDebtMilestoneWatermark(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("e1", "m1", "An", date(2024, time.January, 1), 1, nil),
		entryWithMember("e2", "m1", "An", date(2024, time.January, 8), 2, intPtr(50000)),
	}}
	paymentSource := &fakePaymentSource{items: []payments.Payment{
		{ID: "p1", MemberID: "m1", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 1), Amount: 30000},
	}}
	service := newTestService(PolicyMilestone, entrySource, paymentSource)

	report, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.January, 1), date(2024, time.January, 8), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Debts) != 1 {
		t.Fatalf("expected 1 debt, got %d", len(report.Debts))
	}
	if report.Debts[0].TotalMeals != 2 || report.Debts[0].TotalAmount != 100000 {
		t.Fatalf("unexpected debt after payment: %+v", report.Debts[0])
	}
}

func TestPoliciesDivergeOnGappedPayments(t *testing.T) {
	items := []entries.EntryWithMember{
		entryWithMember("e1", "m1", "An", date(2024, time.January, 1), 1, intPtr(30000)),
		entryWithMember("e2", "m1", "An", date(2024, time.January, 8), 1, intPtr(30000)),
		entryWithMember("e3", "m1", "An", date(2024, time.January, 15), 1, intPtr(30000)),
	}
	gapped := []payments.Payment{
		{ID: "p1", MemberID: "m1", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 1), Amount: 30000},
		{ID: "p2", MemberID: "m1", StartDate: date(2024, time.January, 15), EndDate: date(2024, time.January, 15), Amount: 30000},
	}

	from, to := date(2024, time.January, 1), date(2024, time.January, 15)

	milestone := newTestService(PolicyMilestone, &fakeEntrySource{items: items}, &fakePaymentSource{items: gapped})
	report, err := milestone.ComputeWeeklyDebt(context.Background(), from, to, 0)
	if err != nil {
		t.Fatalf("milestone: unexpected error: %v", err)
	}
	// Watermark is Jan 15, so the Jan 8 gap is swallowed.
	if len(report.Debts) != 0 {
		t.Fatalf("milestone: expected no debts, got %+v", report.Debts)
	}

	overlap := newTestService(PolicyOverlap, &fakeEntrySource{items: items}, &fakePaymentSource{items: gapped})
	report, err = overlap.ComputeWeeklyDebt(context.Background(), from, to, 0)
	if err != nil {
		t.Fatalf("overlap: unexpected error: %v", err)
	}
	// No payment interval contains Jan 8.
	if len(report.Debts) != 1 || report.Debts[0].TotalMeals != 1 || report.Debts[0].TotalAmount != 30000 {
		t.Fatalf("overlap: expected the gap entry unpaid, got %+v", report.Debts)
	}
}

func TestComputeWeeklyDebtRangeBoundsInclusive(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("before", "m1", "An", date(2024, time.January, 0), 1, intPtr(10)),
		entryWithMember("start", "m1", "An", date(2024, time.January, 1), 1, intPtr(10)),
		entryWithMember("end", "m1", "An", date(2024, time.January, 7), 1, intPtr(10)),
		entryWithMember("after", "m1", "An", date(2024, time.January, 8), 1, intPtr(10)),
	}}
	service := newTestService(PolicyMilestone, entrySource, &fakePaymentSource{})

	report, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.January, 1), date(2024, time.January, 7), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Debts) != 1 || report.Debts[0].TotalMeals != 2 || report.Debts[0].TotalAmount != 20 {
		t.Fatalf("expected exactly the boundary entries, got %+v", report.Debts)
	}
}

func TestComputeWeeklyDebtEmptyRange(t *testing.T) {
	service := newTestService(PolicyMilestone, &fakeEntrySource{}, &fakePaymentSource{})

	report, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.March, 1), date(2024, time.March, 7), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Debts == nil || len(report.Debts) != 0 {
		t.Fatalf("expected empty debts slice, got %#v", report.Debts)
	}
	if report.TotalAmount != 0 {
		t.Fatalf("expected zero total, got %d", report.TotalAmount)
	}
}

func TestComputeWeeklyDebtMissingRange(t *testing.T) {
	service := newTestService(PolicyMilestone, &fakeEntrySource{}, &fakePaymentSource{})

	if _, err := service.ComputeWeeklyDebt(context.Background(), time.Time{}, date(2024, time.March, 7), 0); !errors.Is(err, ErrMissingRange) {
		t.Fatalf("expected ErrMissingRange, got %v", err)
	}
	if _, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.March, 1), time.Time{}, 0); !errors.Is(err, ErrMissingRange) {
		t.Fatalf("expected ErrMissingRange, got %v", err)
	}
}

func TestComputeWeeklyDebtIdempotent(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("e1", "m1", "An", date(2024, time.January, 1), 2, nil),
		entryWithMember("e2", "m2", "Binh", date(2024, time.January, 2), 1, intPtr(45000)),
	}}
	paymentSource := &fakePaymentSource{items: []payments.Payment{
		{ID: "p1", MemberID: "m2", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 1), Amount: 45000},
	}}
	service := newTestService(PolicyMilestone, entrySource, paymentSource)

	first, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.January, 1), date(2024, time.January, 7), 20000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.January, 1), date(2024, time.January, 7), 20000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical reports, got %+v and %+v", first, second)
	}
}

func TestComputeWeeklyDebtOrdersByNameCaseInsensitive(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("e1", "m1", "alice", date(2024, time.January, 1), 1, intPtr(10)),
		entryWithMember("e2", "m2", "Bob", date(2024, time.January, 1), 1, intPtr(10)),
	}}
	service := newTestService(PolicyMilestone, entrySource, &fakePaymentSource{})

	report, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.January, 1), date(2024, time.January, 7), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Debts) != 2 {
		t.Fatalf("expected 2 debts, got %d", len(report.Debts))
	}
	// Byte order would put "Bob" first; collation must not.
	if report.Debts[0].MemberName != "alice" || report.Debts[1].MemberName != "Bob" {
		t.Fatalf("unexpected order: %q, %q", report.Debts[0].MemberName, report.Debts[1].MemberName)
	}
}

func TestCheckEntryPaidPerPolicy(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("e1", "m1", "An", date(2024, time.January, 8), 1, nil),
	}}
	// Payment interval starts after the entry date but ends past it: the
	// watermark covers the entry, the interval does not.
	paymentSource := &fakePaymentSource{items: []payments.Payment{
		{ID: "p1", MemberID: "m1", StartDate: date(2024, time.January, 10), EndDate: date(2024, time.January, 12), Amount: 30000},
	}}

	milestone := newTestService(PolicyMilestone, entrySource, paymentSource)
	isPaid, err := milestone.CheckEntryPaid(context.Background(), "e1")
	if err != nil {
		t.Fatalf("milestone: unexpected error: %v", err)
	}
	if !isPaid {
		t.Fatalf("milestone: expected entry paid")
	}

	overlap := newTestService(PolicyOverlap, entrySource, paymentSource)
	isPaid, err = overlap.CheckEntryPaid(context.Background(), "e1")
	if err != nil {
		t.Fatalf("overlap: unexpected error: %v", err)
	}
	if isPaid {
		t.Fatalf("overlap: expected entry unpaid")
	}
}

func TestCheckEntryPaidNotFound(t *testing.T) {
	service := newTestService(PolicyMilestone, &fakeEntrySource{}, &fakePaymentSource{})

	if _, err := service.CheckEntryPaid(context.Background(), "missing"); !errors.Is(err, entries.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestMemberReportMatchesDebtComputation(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("e1", "m1", "An", date(2024, time.January, 1), 1, nil),
		entryWithMember("e2", "m1", "An", date(2024, time.January, 8), 2, intPtr(50000)),
		entryWithMember("other", "m2", "Binh", date(2024, time.January, 3), 1, nil),
	}}
	paymentSource := &fakePaymentSource{items: []payments.Payment{
		{ID: "p1", MemberID: "m1", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.January, 1), Amount: 30000},
	}}
	service := newTestService(PolicyMilestone, entrySource, paymentSource)

	statement, err := service.MemberReport(context.Background(), "m1", date(2024, time.January, 1), date(2024, time.January, 8), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(statement) != 2 {
		t.Fatalf("expected 2 statement rows, got %d", len(statement))
	}
	if statement[0].Entry.ID != "e1" || statement[1].Entry.ID != "e2" {
		t.Fatalf("expected chronological order, got %q then %q", statement[0].Entry.ID, statement[1].Entry.ID)
	}
	if !statement[0].IsPaid || statement[0].Amount != 30000 {
		t.Fatalf("unexpected first row: %+v", statement[0])
	}
	if statement[1].IsPaid || statement[1].Amount != 100000 {
		t.Fatalf("unexpected second row: %+v", statement[1])
	}

	// The statement's unpaid rows must add up to the weekly debt for the
	// same range.
	report, err := service.ComputeWeeklyDebt(context.Background(), date(2024, time.January, 1), date(2024, time.January, 8), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unpaid := 0
	for _, row := range statement {
		if !row.IsPaid {
			unpaid += row.Amount
		}
	}
	for _, d := range report.Debts {
		if d.MemberID == "m1" && d.TotalAmount != unpaid {
			t.Fatalf("statement and debt disagree: %d vs %d", unpaid, d.TotalAmount)
		}
	}
}

func TestSettleClearsDebt(t *testing.T) {
	entrySource := &fakeEntrySource{items: []entries.EntryWithMember{
		entryWithMember("e1", "m1", "An", date(2024, time.January, 1), 1, nil),
		entryWithMember("e2", "m1", "An", date(2024, time.January, 8), 2, intPtr(50000)),
	}}
	paymentSource := &fakePaymentSource{}
	service := newTestService(PolicyMilestone, entrySource, paymentSource)

	from, to := date(2024, time.January, 1), date(2024, time.January, 8)

	payment, err := service.Settle(context.Background(), SettleInput{
		MemberID:       "m1",
		StartDate:      from,
		EndDate:        to,
		PaymentEndDate: to,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payment.Amount != 130000 {
		t.Fatalf("expected settled amount 130000, got %d", payment.Amount)
	}
	if !payment.StartDate.Equal(from) || !payment.EndDate.Equal(to) {
		t.Fatalf("unexpected payment range: %s .. %s", payment.StartDate, payment.EndDate)
	}
	if payment.Note == nil || *payment.Note != "debt settlement 2024-01-01 to 2024-01-08" {
		t.Fatalf("unexpected note: %v", payment.Note)
	}

	report, err := service.ComputeWeeklyDebt(context.Background(), from, to, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, d := range report.Debts {
		if d.MemberID == "m1" {
			t.Fatalf("expected member settled, still owes %+v", d)
		}
	}
}

func TestSettleRejectsEndBeforeRangeStart(t *testing.T) {
	service := newTestService(PolicyMilestone, &fakeEntrySource{}, &fakePaymentSource{})

	_, err := service.Settle(context.Background(), SettleInput{
		MemberID:       "m1",
		StartDate:      date(2024, time.January, 8),
		EndDate:        date(2024, time.January, 14),
		PaymentEndDate: date(2024, time.January, 7),
	})
	if !errors.Is(err, payments.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestSettleRejectsZeroDebt(t *testing.T) {
	service := newTestService(PolicyMilestone, &fakeEntrySource{}, &fakePaymentSource{})

	_, err := service.Settle(context.Background(), SettleInput{
		MemberID:       "m1",
		StartDate:      date(2024, time.January, 1),
		EndDate:        date(2024, time.January, 7),
		PaymentEndDate: date(2024, time.January, 7),
	})
	if !errors.Is(err, ErrNoOutstandingDebt) {
		t.Fatalf("expected ErrNoOutstandingDebt, got %v", err)
	}
}
