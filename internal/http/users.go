package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novohorizonte/pcm/internal/http/middleware"
)

// ListPendingUsers devolve as contas aguardando aprovação.
func (h *Handler) ListPendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListPendingUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

// ApproveUser ativa a conta com o papel solicitado no registro.
func (h *Handler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	approver := middleware.GetUser(r.Context())
	if err := h.auth.ApproveUser(r.Context(), userID, approver.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RejectUser inativa a conta sem alterar o papel.
func (h *Handler) RejectUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	approver := middleware.GetUser(r.Context())
	if err := h.auth.RejectUser(r.Context(), userID, approver.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
