package handler

import (
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	debtdomain "lunch-ledger-go/internal/domain/debt"
	membersdomain "lunch-ledger-go/internal/domain/members"
	"lunch-ledger-go/internal/export"
)

type statementEntryResponse struct {
	entryResponse
	IsPaid bool `json:"isPaid"`
	Amount int  `json:"amount"`
}

func (h *Handlers) MemberReport(w http.ResponseWriter, r *http.Request) {
	memberID, from, to, mealPrice, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	statement, err := h.Debt.MemberReport(r.Context(), memberID, from, to, mealPrice)
	if err != nil {
		if errors.Is(err, debtdomain.ErrMissingRange) {
			writeError(w, http.StatusBadRequest, "missing_parameter", "startDate and endDate are required")
			return
		}
		h.log.InternalError("report.member: report failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]statementEntryResponse, 0, len(statement))
	for _, item := range statement {
		response = append(response, statementEntryResponse{
			entryResponse: toEntryResponse(item.Entry),
			IsPaid:        item.IsPaid,
			Amount:        item.Amount,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) ExportMemberReport(w http.ResponseWriter, r *http.Request) {
	memberID, from, to, mealPrice, ok := h.reportParams(w, r)
	if !ok {
		return
	}

	member, err := h.Members.GetMember(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, membersdomain.ErrMemberNotFound) {
			h.log.BusinessError("report.export: member not found", err, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("report.export: get member failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	statement, err := h.Debt.MemberReport(r.Context(), memberID, from, to, mealPrice)
	if err != nil {
		h.log.InternalError("report.export: report failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	filename := export.StatementFilename(member.Name, from, to)
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))

	if err := export.WriteMemberStatement(w, statement); err != nil {
		// Headers are gone already; nothing better to do than log.
		h.log.InternalError("report.export: write workbook failed", err, "member_id", memberID)
	}
}

func (h *Handlers) reportParams(w http.ResponseWriter, r *http.Request) (string, time.Time, time.Time, int, bool) {
	query := r.URL.Query()

	memberID := strings.TrimSpace(query.Get("memberId"))
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", "memberId, startDate, and endDate are required")
		return "", time.Time{}, time.Time{}, 0, false
	}
	from, err := parseDateRequired(query.Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_parameter", "memberId, startDate, and endDate are required")
		return "", time.Time{}, time.Time{}, 0, false
	}
	to, err := parseDateRequired(query.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_parameter", "memberId, startDate, and endDate are required")
		return "", time.Time{}, time.Time{}, 0, false
	}
	mealPrice, err := parseAmountParam(query.Get("mealPrice"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid mealPrice")
		return "", time.Time{}, time.Time{}, 0, false
	}

	return memberID, from, to, mealPrice, true
}
