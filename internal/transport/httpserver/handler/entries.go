package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	entriesdomain "lunch-ledger-go/internal/domain/entries"
	membersdomain "lunch-ledger-go/internal/domain/members"
	"github.com/go-chi/chi/v5"
)

type createEntryRequest struct {
	MemberID string  `json:"memberId"`
	Date     string  `json:"date"`
	Quantity int     `json:"quantity"`
	Price    *int    `json:"price"`
	Note     *string `json:"note"`
}

// optionalInt / optionalString record whether a field appeared in the request
// body at all, so an update can tell "price: null" (clear it) apart from an
// absent price (leave it alone).
type optionalInt struct {
	set   bool
	value *int
}

func (o *optionalInt) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, []byte("null")) {
		o.value = nil
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

type optionalString struct {
	set   bool
	value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, []byte("null")) {
		o.value = nil
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

type updateEntryRequest struct {
	MemberID *string        `json:"memberId"`
	Date     *string        `json:"date"`
	Quantity *int           `json:"quantity"`
	Price    optionalInt    `json:"price"`
	Note     optionalString `json:"note"`
}

type entryMemberResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

type entryResponse struct {
	ID        string              `json:"id"`
	MemberID  string              `json:"memberId"`
	Date      string              `json:"date"`
	Quantity  int                 `json:"quantity"`
	Price     *int                `json:"price"`
	Note      *string             `json:"note"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Member    entryMemberResponse `json:"member"`
}

func toEntryResponse(item entriesdomain.EntryWithMember) entryResponse {
	return entryResponse{
		ID:        item.ID,
		MemberID:  item.MemberID,
		Date:      formatDate(item.Date),
		Quantity:  item.Quantity,
		Price:     item.Price,
		Note:      item.Note,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Member: entryMemberResponse{
			ID:       item.Member.ID,
			Name:     item.Member.Name,
			IsActive: item.Member.IsActive,
		},
	}
}

func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.Entries.ListEntries(r.Context(), entriesdomain.ListFilter{From: from, To: to})
	if err != nil {
		h.log.InternalError("entries.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]entryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toEntryResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if strings.TrimSpace(req.MemberID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "memberId is required")
		return
	}
	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}

	created, err := h.Entries.CreateEntry(r.Context(), entriesdomain.CreateEntryInput{
		MemberID: req.MemberID,
		Date:     date,
		Quantity: req.Quantity,
		Price:    req.Price,
		Note:     req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, entriesdomain.ErrEntryConflict):
			h.log.BusinessError("entries.create: duplicate entry", err, "member_id", req.MemberID, "date", req.Date)
			writeError(w, http.StatusConflict, "entry_conflict", "member already has an entry for this date")
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			h.log.BusinessError("entries.create: member not found", err, "member_id", req.MemberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		default:
			h.log.InternalError("entries.create: create failed", err, "member_id", req.MemberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(*created))
}

func (h *Handlers) GetEntry(w http.ResponseWriter, r *http.Request) {
	entryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	item, err := h.Entries.GetEntry(r.Context(), entryID)
	if err != nil {
		if errors.Is(err, entriesdomain.ErrEntryNotFound) {
			h.log.BusinessError("entries.get: entry not found", err, "entry_id", entryID)
			writeError(w, http.StatusNotFound, "entry_not_found", "lunch entry not found")
			return
		}
		h.log.InternalError("entries.get: get failed", err, "entry_id", entryID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(*item))
}

func (h *Handlers) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	entryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	input := entriesdomain.UpdateEntryInput{
		ID:       entryID,
		MemberID: req.MemberID,
		Quantity: req.Quantity,
		Price:    entriesdomain.OptionalInt{Set: req.Price.set, Value: req.Price.value},
		Note:     entriesdomain.OptionalString{Set: req.Note.set, Value: req.Note.value},
	}
	if req.Date != nil {
		date, err := parseDateRequired(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
			return
		}
		input.Date = &date
	}

	updated, err := h.Entries.UpdateEntry(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, entriesdomain.ErrEntryNotFound):
			h.log.BusinessError("entries.update: entry not found", err, "entry_id", entryID)
			writeError(w, http.StatusNotFound, "entry_not_found", "lunch entry not found")
		case errors.Is(err, entriesdomain.ErrEntryConflict):
			h.log.BusinessError("entries.update: duplicate entry", err, "entry_id", entryID)
			writeError(w, http.StatusConflict, "entry_conflict", "member already has an entry for this date")
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			h.log.BusinessError("entries.update: member not found", err, "entry_id", entryID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		default:
			h.log.InternalError("entries.update: update failed", err, "entry_id", entryID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(*updated))
}

func (h *Handlers) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID := strings.TrimSpace(chi.URLParam(r, "id"))
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if err := h.Entries.DeleteEntry(r.Context(), entryID); err != nil {
		if errors.Is(err, entriesdomain.ErrEntryNotFound) {
			h.log.BusinessError("entries.delete: entry not found", err, "entry_id", entryID)
			writeError(w, http.StatusNotFound, "entry_not_found", "lunch entry not found")
			return
		}
		h.log.InternalError("entries.delete: delete failed", err, "entry_id", entryID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
