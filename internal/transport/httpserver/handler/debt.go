package handler

import (
	"errors"
	"net/http"
	"strings"

	debtdomain "lunch-ledger-go/internal/domain/debt"
	entriesdomain "lunch-ledger-go/internal/domain/entries"
	membersdomain "lunch-ledger-go/internal/domain/members"
	paymentsdomain "lunch-ledger-go/internal/domain/payments"
)

type weeklyDebtResponse struct {
	StartDate   string                  `json:"startDate"`
	EndDate     string                  `json:"endDate"`
	MealPrice   int                     `json:"mealPrice"`
	Policy      string                  `json:"policy"`
	Debts       []debtdomain.WeeklyDebt `json:"debts"`
	TotalAmount int                     `json:"totalAmount"`
}

type settleDebtRequest struct {
	MemberID       string `json:"memberId"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	PaymentEndDate string `json:"paymentEndDate"`
	MealPrice      int    `json:"mealPrice"`
}

func (h *Handlers) WeeklyDebt(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	startDate, err := parseDateRequired(query.Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_parameter", "startDate and endDate are required")
		return
	}
	endDate, err := parseDateRequired(query.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_parameter", "startDate and endDate are required")
		return
	}
	mealPrice, err := parseAmountParam(query.Get("mealPrice"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid mealPrice")
		return
	}

	report, err := h.Debt.ComputeWeeklyDebt(r.Context(), startDate, endDate, mealPrice)
	if err != nil {
		if errors.Is(err, debtdomain.ErrMissingRange) {
			writeError(w, http.StatusBadRequest, "missing_parameter", "startDate and endDate are required")
			return
		}
		h.log.InternalError("debt.weekly: compute failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, weeklyDebtResponse{
		StartDate:   formatDate(report.StartDate),
		EndDate:     formatDate(report.EndDate),
		MealPrice:   report.MealPrice,
		Policy:      string(h.Debt.Policy()),
		Debts:       report.Debts,
		TotalAmount: report.TotalAmount,
	})
}

func (h *Handlers) SettleDebt(w http.ResponseWriter, r *http.Request) {
	var req settleDebtRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.MemberID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "memberId is required")
		return
	}
	startDate, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid startDate")
		return
	}
	endDate, err := parseDateRequired(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid endDate")
		return
	}
	paymentEndDate, err := parseDateRequired(req.PaymentEndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid paymentEndDate")
		return
	}

	payment, err := h.Debt.Settle(r.Context(), debtdomain.SettleInput{
		MemberID:       req.MemberID,
		StartDate:      startDate,
		EndDate:        endDate,
		PaymentEndDate: paymentEndDate,
		MealPrice:      req.MealPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentsdomain.ErrInvalidRange):
			writeError(w, http.StatusBadRequest, "invalid_range", "paymentEndDate must not be before startDate")
		case errors.Is(err, debtdomain.ErrNoOutstandingDebt):
			h.log.BusinessError("debt.settle: nothing to settle", err, "member_id", req.MemberID)
			writeError(w, http.StatusConflict, "no_outstanding_debt", "member has no outstanding debt in range")
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			h.log.BusinessError("debt.settle: member not found", err, "member_id", req.MemberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		default:
			h.log.InternalError("debt.settle: settle failed", err, "member_id", req.MemberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentResponse(*payment))
}

func (h *Handlers) CheckEntryPaid(w http.ResponseWriter, r *http.Request) {
	entryID := strings.TrimSpace(r.URL.Query().Get("entryId"))
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", "entryId is required")
		return
	}

	isPaid, err := h.Debt.CheckEntryPaid(r.Context(), entryID)
	if err != nil {
		if errors.Is(err, entriesdomain.ErrEntryNotFound) {
			h.log.BusinessError("debt.check_entry: entry not found", err, "entry_id", entryID)
			writeError(w, http.StatusNotFound, "entry_not_found", "lunch entry not found")
			return
		}
		h.log.InternalError("debt.check_entry: check failed", err, "entry_id", entryID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"isPaid": isPaid})
}
