package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	membersdomain "lunch-ledger-go/internal/domain/members"
	paymentsdomain "lunch-ledger-go/internal/domain/payments"
)

type createPaymentRequest struct {
	MemberID  string  `json:"memberId"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Amount    *int    `json:"amount"`
	Note      *string `json:"note"`
}

type paymentResponse struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"memberId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Amount    int       `json:"amount"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPaymentResponse(payment paymentsdomain.Payment) paymentResponse {
	return paymentResponse{
		ID:        payment.ID,
		MemberID:  payment.MemberID,
		StartDate: formatDate(payment.StartDate),
		EndDate:   formatDate(payment.EndDate),
		Amount:    payment.Amount,
		Note:      payment.Note,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, err := parseDateParam(query.Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid startDate")
		return
	}
	to, err := parseDateParam(query.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid endDate")
		return
	}

	filter := paymentsdomain.ListFilter{
		MemberID: strings.TrimSpace(query.Get("memberId")),
		From:     from,
		To:       to,
	}

	items, err := h.Payments.ListPayments(r.Context(), filter)
	if err != nil {
		h.log.InternalError("payments.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]paymentResponse, 0, len(items))
	for _, payment := range items {
		response = append(response, toPaymentResponse(payment))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
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
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", "amount is required")
		return
	}

	created, err := h.Payments.CreatePayment(r.Context(), paymentsdomain.CreatePaymentInput{
		MemberID:  req.MemberID,
		StartDate: startDate,
		EndDate:   endDate,
		Amount:    *req.Amount,
		Note:      req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentsdomain.ErrInvalidRange):
			writeError(w, http.StatusBadRequest, "invalid_range", "startDate must be less than or equal to endDate")
		case errors.Is(err, paymentsdomain.ErrInvalidAmount):
			writeError(w, http.StatusBadRequest, "invalid_amount", "amount must be a positive integer")
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			h.log.BusinessError("payments.create: member not found", err, "member_id", req.MemberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		default:
			h.log.InternalError("payments.create: create failed", err, "member_id", req.MemberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentResponse(*created))
}
