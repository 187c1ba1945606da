package handler

import (
	debtdomain "lunch-ledger-go/internal/domain/debt"
	entriesdomain "lunch-ledger-go/internal/domain/entries"
	membersdomain "lunch-ledger-go/internal/domain/members"
	paymentsdomain "lunch-ledger-go/internal/domain/payments"
	"lunch-ledger-go/pkg/logger"
)

type Handlers struct {
	Members  *membersdomain.Service
	Entries  *entriesdomain.Service
	Payments *paymentsdomain.Service
	Debt     *debtdomain.Service
	log      logger.Logger
}

func New(members *membersdomain.Service, entries *entriesdomain.Service, payments *paymentsdomain.Service, debt *debtdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Members:  members,
		Entries:  entries,
		Payments: payments,
		Debt:     debt,
		log:      log,
	}
}
