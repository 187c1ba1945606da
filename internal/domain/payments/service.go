package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListPayments(ctx context.Context, filter ListFilter) ([]Payment, error) {
	items, err := s.repo.ListPayments(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Payment{}
	}
	return items, nil
}

func (s *Service) CreatePayment(ctx context.Context, input CreatePaymentInput) (*Payment, error) {
	start := dateOnly(input.StartDate)
	end := dateOnly(input.EndDate)

	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	payment := Payment{
		ID:        uuid.NewString(),
		MemberID:  input.MemberID,
		StartDate: start,
		EndDate:   end,
		Amount:    input.Amount,
		Note:      input.Note,
	}

	if err := s.repo.CreatePayment(ctx, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
