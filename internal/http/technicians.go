package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novohorizonte/pcm/internal/technician"
)

func (h *Handler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	list, err := h.technicians.ListTechnicians(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

type technicianRequest struct {
	Name       string   `json:"name"`
	Specialty  *string  `json:"specialty"`
	Contact    *string  `json:"contact"`
	HourlyRate *float64 `json:"hourly_rate"`
	AvatarURL  *string  `json:"avatar_url"`
	Status     string   `json:"status"`
}

func (req technicianRequest) params() technician.TechnicianParams {
	status := req.Status
	if status == "" {
		status = "Ativo"
	}
	return technician.TechnicianParams{
		Name:       req.Name,
		Specialty:  req.Specialty,
		Contact:    req.Contact,
		HourlyRate: req.HourlyRate,
		AvatarURL:  req.AvatarURL,
		Status:     status,
	}
}

func (h *Handler) CreateTechnician(w http.ResponseWriter, r *http.Request) {
	var req technicianRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", "nome é obrigatório", nil)
		return
	}

	t, err := h.technicians.CreateTechnician(r.Context(), req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) UpdateTechnician(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req technicianRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}

	t, err := h.technicians.UpdateTechnician(r.Context(), id, req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) DeleteTechnician(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.technicians.DeleteTechnician(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListThirdParties(w http.ResponseWriter, r *http.Request) {
	list, err := h.technicians.ListThirdParties(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

type thirdPartyRequest struct {
	Name       string   `json:"name"`
	Contact    *string  `json:"contact"`
	HourlyRate *float64 `json:"hourly_rate"`
}

func (h *Handler) CreateThirdParty(w http.ResponseWriter, r *http.Request) {
	var req thirdPartyRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}
	if req.Name == "" {
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", "nome é obrigatório", nil)
		return
	}

	tp, err := h.technicians.CreateThirdParty(r.Context(), technician.ThirdPartyParams{
		Name:       req.Name,
		Contact:    req.Contact,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tp)
}

func (h *Handler) DeleteThirdParty(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.technicians.DeleteThirdParty(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
