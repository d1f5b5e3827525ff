package workorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/novohorizonte/pcm/internal/stats"
)

// WorkOrder modela uma ordem de serviço com as referências de ativo e
// executor já resolvidas pelas consultas de listagem.
type WorkOrder struct {
	ID              uuid.UUID  `json:"id"`
	OrderNumber     string     `json:"order_number"`
	Issue           string     `json:"issue"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	Sector          string     `json:"sector"`
	MaintenanceType *string    `json:"maintenance_type,omitempty"`
	FailureType     *string    `json:"failure_type,omitempty"`
	TechnicalReport *string    `json:"technical_report,omitempty"`
	AssetID         *uuid.UUID `json:"asset_id,omitempty"`
	TechnicianID    *uuid.UUID `json:"technician_id,omitempty"`
	ThirdPartyID    *uuid.UUID `json:"third_party_id,omitempty"`
	RequesterID     *uuid.UUID `json:"requester_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	Date            *time.Time `json:"date,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	DowntimeHours   *float64   `json:"downtime_hours,omitempty"`
	RepairHours     *float64   `json:"repair_hours,omitempty"`
	ResponseHours   *float64   `json:"response_hours,omitempty"`
	EstimatedHours  *float64   `json:"estimated_hours,omitempty"`
	PartsCost       *float64   `json:"parts_cost,omitempty"`
	HourlyRate      *float64   `json:"hourly_rate,omitempty"`

	AssetName      *string `json:"asset_name,omitempty"`
	AssetCategory  *string `json:"asset_category,omitempty"`
	TechnicianName *string `json:"technician_name,omitempty"`
	ThirdPartyName *string `json:"third_party_name,omitempty"`
}

// StatsOrder converte para a visão consumida pelo agregador, com a
// coerção melhor-esforço de campos ausentes para zero.
func (w WorkOrder) StatsOrder() stats.Order {
	return stats.Order{
		ID:              w.ID.String(),
		OrderNumber:     w.OrderNumber,
		Status:          w.Status,
		Priority:        w.Priority,
		MaintenanceType: deref(w.MaintenanceType),
		FailureType:     deref(w.FailureType),
		AssetID:         uuidString(w.AssetID),
		AssetName:       deref(w.AssetName),
		AssetCategory:   deref(w.AssetCategory),
		TechnicianID:    uuidString(w.TechnicianID),
		TechnicianName:  deref(w.TechnicianName),
		ThirdPartyID:    uuidString(w.ThirdPartyID),
		ThirdPartyName:  deref(w.ThirdPartyName),
		CreatedAt:       w.CreatedAt,
		RespondedAt:     w.RespondedAt,
		ResolvedAt:      w.ResolvedAt,
		UpdatedAt:       w.UpdatedAt,
		DowntimeHours:   derefF(w.DowntimeHours),
		RepairHours:     derefF(w.RepairHours),
		ResponseHours:   derefF(w.ResponseHours),
		EstimatedHours:  derefF(w.EstimatedHours),
		PartsCost:       derefF(w.PartsCost),
		HourlyRate:      derefF(w.HourlyRate),
	}
}

// StatsOrders converte uma listagem inteira.
func StatsOrders(orders []WorkOrder) []stats.Order {
	result := make([]stats.Order, 0, len(orders))
	for _, w := range orders {
		result = append(result, w.StatsOrder())
	}
	return result
}

// ValidStatus informa se o status é um dos cinco conhecidos.
func ValidStatus(status string) bool {
	switch status {
	case stats.StatusPendente, stats.StatusEmManutencao, stats.StatusAguardandoPeca,
		stats.StatusConcluido, stats.StatusCancelado:
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefF(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func uuidString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
