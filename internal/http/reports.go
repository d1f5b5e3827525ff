package http

import (
	"net/http"
	"time"

	"github.com/novohorizonte/pcm/internal/asset"
	"github.com/novohorizonte/pcm/internal/stats"
	"github.com/novohorizonte/pcm/internal/workorder"
)

type reportResponse struct {
	PeriodDays int          `json:"period_days"`
	Report     stats.Report `json:"report"`
}

// Report monta o relatório gerencial do período (?days=N, padrão 30).
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	days := parsePositiveInt(r.URL.Query().Get("days"))
	if days <= 0 {
		days = defaultPeriodDays
	}

	orders, assets, err := h.periodData(r, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	report := stats.BuildReport(workorder.StatsOrders(orders),
		float64(days)*24, asset.CountByCategory(assets), time.Now().UTC())

	WriteJSON(w, http.StatusOK, reportResponse{PeriodDays: days, Report: report})
}

// PublicReport expõe o mesmo relatório sem autenticação, atrás do rate
// limit por IP, para telões e compartilhamento externo.
func (h *Handler) PublicReport(w http.ResponseWriter, r *http.Request) {
	h.Report(w, r)
}
