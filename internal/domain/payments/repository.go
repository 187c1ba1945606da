package payments

import "context"

type Repository interface {
	// ListPayments returns payments newest first (creation order), which is
	// how the ledger displays them.
	ListPayments(ctx context.Context, filter ListFilter) ([]Payment, error)
	CreatePayment(ctx context.Context, payment *Payment) error
}
