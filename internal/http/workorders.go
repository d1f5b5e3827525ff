package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novohorizonte/pcm/internal/http/middleware"
	"github.com/novohorizonte/pcm/internal/workorder"
)

// ListWorkOrders lista as ordens, opcionalmente filtradas por status e
// janela em dias (?days=N).
func (h *Handler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	filter := workorder.Filter{Status: r.URL.Query().Get("status")}
	if days := parsePositiveInt(r.URL.Query().Get("days")); days > 0 {
		since := time.Now().UTC().AddDate(0, 0, -days)
		filter.Since = &since
	}

	orders, err := h.orders.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, orders)
}

// GetWorkOrder devolve uma ordem pelo id.
func (h *Handler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

type createWorkOrderRequest struct {
	Issue           string     `json:"issue"`
	Priority        string     `json:"priority"`
	Sector          string     `json:"sector"`
	MaintenanceType *string    `json:"maintenance_type"`
	FailureType     *string    `json:"failure_type"`
	AssetID         *uuid.UUID `json:"asset_id"`
	TechnicianID    *uuid.UUID `json:"technician_id"`
	ThirdPartyID    *uuid.UUID `json:"third_party_id"`
	Date            *time.Time `json:"date"`
	EstimatedHours  *float64   `json:"estimated_hours"`
	HourlyRate      *float64   `json:"hourly_rate"`
}

// CreateWorkOrder abre uma ordem em Pendente com número sequencial.
func (h *Handler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var req createWorkOrderRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}

	requester := middleware.GetUser(r.Context())
	order, err := h.orders.Create(r.Context(), workorder.CreateParams{
		Issue:           req.Issue,
		Priority:        req.Priority,
		Sector:          req.Sector,
		MaintenanceType: req.MaintenanceType,
		FailureType:     req.FailureType,
		AssetID:         req.AssetID,
		TechnicianID:    req.TechnicianID,
		ThirdPartyID:    req.ThirdPartyID,
		RequesterID:     &requester.ID,
		Date:            req.Date,
		EstimatedHours:  req.EstimatedHours,
		HourlyRate:      req.HourlyRate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, order)
}

type updateWorkOrderRequest struct {
	Status          string     `json:"status"`
	TechnicianID    *uuid.UUID `json:"technician_id"`
	ThirdPartyID    *uuid.UUID `json:"third_party_id"`
	TechnicalReport *string    `json:"technical_report"`
	DowntimeHours   *float64   `json:"downtime_hours"`
	RepairHours     *float64   `json:"repair_hours"`
	PartsCost       *float64   `json:"parts_cost"`
	HourlyRate      *float64   `json:"hourly_rate"`
}

// UpdateWorkOrder avança o ciclo de vida da ordem.
func (h *Handler) UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req updateWorkOrderRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), workorder.UpdateInput{
		ID:              id,
		Status:          req.Status,
		TechnicianID:    req.TechnicianID,
		ThirdPartyID:    req.ThirdPartyID,
		TechnicalReport: req.TechnicalReport,
		DowntimeHours:   req.DowntimeHours,
		RepairHours:     req.RepairHours,
		PartsCost:       req.PartsCost,
		HourlyRate:      req.HourlyRate,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, order)
}

// DeleteWorkOrder remove a ordem.
func (h *Handler) DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
