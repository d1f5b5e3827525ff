package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/novohorizonte/pcm/internal/asset"
	"github.com/novohorizonte/pcm/internal/config"
	httpmiddleware "github.com/novohorizonte/pcm/internal/http/middleware"
	"github.com/novohorizonte/pcm/internal/inventory"
	"github.com/novohorizonte/pcm/internal/service"
	"github.com/novohorizonte/pcm/internal/settings"
	"github.com/novohorizonte/pcm/internal/technician"
	"github.com/novohorizonte/pcm/internal/workorder"
)

// AssetStore é o subconjunto do cadastro de ativos usado pelos handlers.
type AssetStore interface {
	List(ctx context.Context) ([]asset.Asset, error)
	GetByID(ctx context.Context, id uuid.UUID) (asset.Asset, error)
	Create(ctx context.Context, p asset.CreateParams) (asset.Asset, error)
	Update(ctx context.Context, id uuid.UUID, p asset.CreateParams) (asset.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TechnicianStore cobre técnicos internos e terceirizadas.
type TechnicianStore interface {
	ListTechnicians(ctx context.Context) ([]technician.Technician, error)
	CreateTechnician(ctx context.Context, p technician.TechnicianParams) (technician.Technician, error)
	UpdateTechnician(ctx context.Context, id uuid.UUID, p technician.TechnicianParams) (technician.Technician, error)
	DeleteTechnician(ctx context.Context, id uuid.UUID) error
	ListThirdParties(ctx context.Context) ([]technician.ThirdParty, error)
	CreateThirdParty(ctx context.Context, p technician.ThirdPartyParams) (technician.ThirdParty, error)
	DeleteThirdParty(ctx context.Context, id uuid.UUID) error
}

// InventoryStore é o subconjunto do almoxarifado usado pelos handlers.
type InventoryStore interface {
	List(ctx context.Context) ([]inventory.Item, error)
	Create(ctx context.Context, p inventory.ItemParams) (inventory.Item, error)
	Update(ctx context.Context, id uuid.UUID, p inventory.ItemParams) (inventory.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsStore é a linha única de preferências da aplicação.
type SettingsStore interface {
	Get(ctx context.Context) (settings.Settings, error)
	Save(ctx context.Context, s settings.Settings, updatedBy uuid.UUID) (settings.Settings, error)
}

// Handler concentra as dependências dos endpoints.
type Handler struct {
	cfg           *config.Config
	pool          *pgxpool.Pool
	redis         *redis.Client
	auth          *service.AuthService
	orders        *workorder.Service
	assets        AssetStore
	technicians   TechnicianStore
	inventory     InventoryStore
	settings      SettingsStore
	publicLimiter *httpmiddleware.RateLimiter
	authLimiter   *httpmiddleware.RateLimiter
}

// Health responde o liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready verifica as dependências externas.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.pool != nil {
		if err := h.pool.Ping(r.Context()); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "postgres indisponível", nil)
			return
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(r.Context()).Err(); err != nil {
			WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "redis indisponível", nil)
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
