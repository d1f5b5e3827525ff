package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/novohorizonte/pcm/internal/inventory"
)

func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// InventorySummary valora o estoque e conta itens críticos.
func (h *Handler) InventorySummary(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, inventory.Summarize(items))
}

type inventoryItemRequest struct {
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	Category  *string `json:"category"`
	Quantity  int     `json:"quantity"`
	MinStock  int     `json:"min_stock"`
	UnitValue float64 `json:"unit_value"`
}

func (req inventoryItemRequest) params() inventory.ItemParams {
	return inventory.ItemParams{
		SKU:       req.SKU,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		MinStock:  req.MinStock,
		UnitValue: req.UnitValue,
	}
}

func (h *Handler) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	var req inventoryItemRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}
	if req.SKU == "" || req.Name == "" {
		WriteError(w, http.StatusUnprocessableEntity, "VALIDATION", "sku e nome são obrigatórios", nil)
		return
	}

	item, err := h.inventory.Create(r.Context(), req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	var req inventoryItemRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}

	item, err := h.inventory.Update(r.Context(), id, req.params())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "id inválido", nil)
		return
	}

	if err := h.inventory.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
