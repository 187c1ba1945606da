package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	membersdomain "lunch-ledger-go/internal/domain/members"
	"github.com/go-chi/chi/v5"
)

type createMemberRequest struct {
	Name     string `json:"name"`
	IsActive *bool  `json:"isActive"`
}

type updateMemberRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

type memberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toMemberResponse(member membersdomain.Member) memberResponse {
	return memberResponse{
		ID:        member.ID,
		Name:      member.Name,
		IsActive:  member.IsActive,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	items, err := h.Members.ListMembers(r.Context())
	if err != nil {
		h.log.InternalError("members.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]memberResponse, 0, len(items))
	for _, member := range items {
		response = append(response, toMemberResponse(member))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	created, err := h.Members.CreateMember(r.Context(), membersdomain.CreateMemberInput{
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		if errors.Is(err, membersdomain.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
			return
		}
		h.log.InternalError("members.create: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toMemberResponse(*created))
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID := strings.TrimSpace(chi.URLParam(r, "id"))
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	member, err := h.Members.GetMember(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, membersdomain.ErrMemberNotFound) {
			h.log.BusinessError("members.get: member not found", err, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.get: get failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*member))
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	memberID := strings.TrimSpace(chi.URLParam(r, "id"))
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	updated, err := h.Members.UpdateMember(r.Context(), membersdomain.UpdateMemberInput{
		ID:       memberID,
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, membersdomain.ErrMemberNotFound):
			h.log.BusinessError("members.update: member not found", err, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
		case errors.Is(err, membersdomain.ErrNameRequired):
			writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		default:
			h.log.InternalError("members.update: update failed", err, "member_id", memberID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toMemberResponse(*updated))
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	memberID := strings.TrimSpace(chi.URLParam(r, "id"))
	if memberID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	if err := h.Members.DeleteMember(r.Context(), memberID); err != nil {
		if errors.Is(err, membersdomain.ErrMemberNotFound) {
			h.log.BusinessError("members.delete: member not found", err, "member_id", memberID)
			writeError(w, http.StatusNotFound, "member_not_found", "member not found")
			return
		}
		h.log.InternalError("members.delete: delete failed", err, "member_id", memberID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
