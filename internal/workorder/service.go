package workorder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/novohorizonte/pcm/internal/metrics"
	"github.com/novohorizonte/pcm/internal/notify"
	"github.com/novohorizonte/pcm/internal/stats"
	"github.com/novohorizonte/pcm/internal/util"
)

var (
	// ErrInvalidStatus indica um status fora do vocabulário conhecido.
	ErrInvalidStatus = errors.New("status de ordem inválido")
	// ErrMissingFields indica abertura sem os campos obrigatórios.
	ErrMissingFields = errors.New("campos obrigatórios ausentes")
)

// Store é o subconjunto do repositório usado pelo serviço.
type Store interface {
	List(ctx context.Context, f Filter) ([]WorkOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (WorkOrder, error)
	Create(ctx context.Context, p CreateParams, now time.Time) (WorkOrder, error)
	Update(ctx context.Context, p UpdateParams) (WorkOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service aplica as regras de ciclo de vida das ordens de serviço.
type Service struct {
	store    Store
	notifier notify.Dispatcher
}

func NewService(store Store, notifier notify.Dispatcher) *Service {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Service{store: store, notifier: notifier}
}

func (s *Service) List(ctx context.Context, f Filter) ([]WorkOrder, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (WorkOrder, error) {
	return s.store.GetByID(ctx, id)
}

// Create abre a ordem em Pendente e dispara a notificação de criação em
// melhor esforço.
func (s *Service) Create(ctx context.Context, p CreateParams) (WorkOrder, error) {
	if p.Issue == "" || p.Priority == "" || p.Sector == "" {
		return WorkOrder{}, ErrMissingFields
	}

	order, err := s.store.Create(ctx, p, util.Now())
	if err != nil {
		return WorkOrder{}, err
	}

	metrics.WorkOrdersCreated.Inc()
	s.notifier.Dispatch(ctx, notify.EventWorkOrderCreated, notify.WorkOrderPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Issue:       order.Issue,
		Status:      order.Status,
		Priority:    order.Priority,
		Sector:      order.Sector,
	})
	return order, nil
}

// UpdateInput são os campos aceitos no acompanhamento de uma ordem.
type UpdateInput struct {
	ID              uuid.UUID
	Status          string
	TechnicianID    *uuid.UUID
	ThirdPartyID    *uuid.UUID
	TechnicalReport *string
	DowntimeHours   *float64
	RepairHours     *float64
	PartsCost       *float64
	HourlyRate      *float64
}

// UpdateStatus avança a ordem registrando os marcos temporais: o
// primeiro atendimento carimba responded_at e deriva response_hours; a
// conclusão carimba resolved_at. Carimbos já gravados nunca regridem.
func (s *Service) UpdateStatus(ctx context.Context, in UpdateInput) (WorkOrder, error) {
	if !ValidStatus(in.Status) {
		return WorkOrder{}, ErrInvalidStatus
	}

	current, err := s.store.GetByID(ctx, in.ID)
	if err != nil {
		return WorkOrder{}, err
	}

	now := util.Now()
	params := UpdateParams{
		ID:              in.ID,
		Status:          in.Status,
		TechnicianID:    in.TechnicianID,
		ThirdPartyID:    in.ThirdPartyID,
		TechnicalReport: in.TechnicalReport,
		DowntimeHours:   in.DowntimeHours,
		RepairHours:     in.RepairHours,
		PartsCost:       in.PartsCost,
		HourlyRate:      in.HourlyRate,
		UpdatedAt:       now,
	}

	if attending(in.Status) && current.RespondedAt == nil {
		params.RespondedAt = &now
		if current.ResponseHours == nil {
			h := now.Sub(current.CreatedAt).Hours()
			if h < 0 {
				h = 0
			}
			params.ResponseHours = &h
		}
	}
	if in.Status == stats.StatusConcluido && current.ResolvedAt == nil {
		params.ResolvedAt = &now
	}

	order, err := s.store.Update(ctx, params)
	if err != nil {
		return WorkOrder{}, err
	}

	s.notifier.Dispatch(ctx, notify.EventWorkOrderUpdated, notify.WorkOrderPayload{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Issue:       order.Issue,
		Status:      order.Status,
		Priority:    order.Priority,
		Sector:      order.Sector,
	})
	return order, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("order_id", id.String()).Msg("ordem de serviço removida")
	return nil
}

// attending cobre os status que contam como primeiro atendimento.
func attending(status string) bool {
	return status == stats.StatusEmManutencao || status == stats.StatusAguardandoPeca
}
