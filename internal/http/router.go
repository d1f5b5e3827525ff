package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/novohorizonte/pcm/internal/asset"
	"github.com/novohorizonte/pcm/internal/config"
	httpmiddleware "github.com/novohorizonte/pcm/internal/http/middleware"
	"github.com/novohorizonte/pcm/internal/inventory"
	"github.com/novohorizonte/pcm/internal/metrics"
	"github.com/novohorizonte/pcm/internal/notify"
	"github.com/novohorizonte/pcm/internal/service"
	"github.com/novohorizonte/pcm/internal/settings"
	"github.com/novohorizonte/pcm/internal/technician"
	"github.com/novohorizonte/pcm/internal/workorder"
)

// NewRouter monta as dependências e devolve o roteador configurado.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, authService *service.AuthService) http.Handler {
	var dispatcher notify.Dispatcher = notify.Noop{}
	if cfg.NotifyBaseURL != "" {
		dispatcher = notify.NewFunctionDispatcher(cfg.NotifyBaseURL)
	}

	h := &Handler{
		cfg:           cfg,
		pool:          pool,
		redis:         redisClient,
		auth:          authService,
		orders:        workorder.NewService(workorder.NewRepository(pool), dispatcher),
		assets:        asset.NewRepository(pool),
		technicians:   technician.NewRepository(pool),
		inventory:     inventory.NewRepository(pool),
		settings:      settings.NewRepository(pool),
		publicLimiter: httpmiddleware.NewRateLimiter(cfg.RateLimitPublic.RequestsPerSecond, cfg.RateLimitPublic.Burst),
		authLimiter:   httpmiddleware.NewRateLimiter(cfg.RateLimitAuth.RequestsPerSecond, cfg.RateLimitAuth.Burst),
	}

	return h.Routes(authService)
}

// Routes monta a árvore de rotas sobre as dependências já injetadas.
// Separado de NewRouter para que os testes construam o Handler com
// stubs.
func (h *Handler) Routes(checker httpmiddleware.SessionChecker) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.Metrics)
	if h.cfg != nil {
		r.Use(httpmiddleware.CORS(h.cfg.AllowOrigins))
	}

	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Group(func(public chi.Router) {
			if h.publicLimiter != nil {
				public.Use(httpmiddleware.IPRateLimit(h.publicLimiter))
			}

			public.Post("/auth/login", h.Login)
			public.Post("/auth/register", h.Register)
			public.Post("/auth/logout", h.Logout)
			public.Get("/reports/public", h.PublicReport)
		})

		v1.Group(func(private chi.Router) {
			private.Use(httpmiddleware.Auth(checker))
			if h.authLimiter != nil {
				private.Use(httpmiddleware.UserRateLimit(h.authLimiter))
			}

			private.Get("/auth/session", h.Session)
			private.Post("/auth/password", h.ChangePassword)

			private.Get("/dashboard", h.Dashboard)
			private.Get("/reports", h.Report)

			private.Route("/workorders", func(wo chi.Router) {
				wo.Get("/", h.ListWorkOrders)
				wo.Post("/", h.CreateWorkOrder)
				wo.Get("/{id}", h.GetWorkOrder)
				wo.Patch("/{id}", h.UpdateWorkOrder)
				wo.With(httpmiddleware.RequireAdmin).
					Delete("/{id}", h.DeleteWorkOrder)
			})

			private.Route("/assets", func(a chi.Router) {
				a.Get("/", h.ListAssets)
				a.Get("/{id}", h.GetAsset)
				a.Group(func(admin chi.Router) {
					admin.Use(httpmiddleware.RequireAdmin)
					admin.Post("/", h.CreateAsset)
					admin.Put("/{id}", h.UpdateAsset)
					admin.Delete("/{id}", h.DeleteAsset)
				})
			})

			private.Route("/technicians", func(t chi.Router) {
				t.Get("/", h.ListTechnicians)
				t.Group(func(admin chi.Router) {
					admin.Use(httpmiddleware.RequireAdmin)
					admin.Post("/", h.CreateTechnician)
					admin.Put("/{id}", h.UpdateTechnician)
					admin.Delete("/{id}", h.DeleteTechnician)
				})
			})

			private.Route("/third-parties", func(tp chi.Router) {
				tp.Get("/", h.ListThirdParties)
				tp.Group(func(admin chi.Router) {
					admin.Use(httpmiddleware.RequireAdmin)
					admin.Post("/", h.CreateThirdParty)
					admin.Delete("/{id}", h.DeleteThirdParty)
				})
			})

			private.Route("/inventory", func(inv chi.Router) {
				inv.Get("/", h.ListInventory)
				inv.Get("/summary", h.InventorySummary)
				inv.Post("/", h.CreateInventoryItem)
				inv.Put("/{id}", h.UpdateInventoryItem)
				inv.With(httpmiddleware.RequireAdmin).
					Delete("/{id}", h.DeleteInventoryItem)
			})

			private.Route("/users", func(u chi.Router) {
				u.Use(httpmiddleware.RequireAdmin)
				u.Get("/pending", h.ListPendingUsers)
				u.Post("/{id}/approve", h.ApproveUser)
				u.Post("/{id}/reject", h.RejectUser)
			})

			private.Route("/settings", func(s chi.Router) {
				s.Get("/", h.GetSettings)
				s.With(httpmiddleware.RequireAdmin).
					Put("/", h.SaveSettings)
			})
		})
	})

	return r
}
