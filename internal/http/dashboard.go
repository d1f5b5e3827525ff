package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/novohorizonte/pcm/internal/asset"
	"github.com/novohorizonte/pcm/internal/stats"
	"github.com/novohorizonte/pcm/internal/workorder"
)

const defaultPeriodDays = 30

// dashboardResponse é a carga completa da tela inicial.
type dashboardResponse struct {
	PeriodDays int                         `json:"period_days"`
	Summary    stats.DashboardSummary      `json:"summary"`
	Executive  stats.ExecutiveSummary      `json:"executive"`
	TopAssets  []stats.AssetHours          `json:"top_assets"`
	Timeline   []stats.TimelineEntry       `json:"timeline"`
	Leaders    []stats.ExecutorPerformance `json:"leaders"`
}

// Dashboard agrega a visão operacional do período (?days=N, padrão 30).
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	days := parsePositiveInt(r.URL.Query().Get("days"))
	if days <= 0 {
		days = defaultPeriodDays
	}

	orders, assets, err := h.periodData(r, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	statsOrders := workorder.StatsOrders(orders)
	now := time.Now().UTC()
	periodHours := float64(days) * 24

	WriteJSON(w, http.StatusOK, dashboardResponse{
		PeriodDays: days,
		Summary:    stats.Summary(statsOrders, periodHours, len(assets), now),
		Executive:  stats.Executive(statsOrders, periodHours, asset.CountByCategory(assets), now),
		TopAssets:  stats.TopAssetDowntime(statsOrders, 5),
		Timeline:   stats.Timeline(statsOrders, 10),
		Leaders:    stats.Leaderboard(statsOrders),
	})
}

// periodData carrega as ordens da janela e o cadastro de ativos.
func (h *Handler) periodData(r *http.Request, days int) ([]workorder.WorkOrder, []asset.Asset, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	orders, err := h.orders.List(r.Context(), workorder.Filter{Since: &since})
	if err != nil {
		return nil, nil, err
	}
	assets, err := h.assets.List(r.Context())
	if err != nil {
		return nil, nil, err
	}
	return orders, assets, nil
}

func parsePositiveInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
