package http

import (
	"net/http"

	"github.com/novohorizonte/pcm/internal/http/middleware"
	"github.com/novohorizonte/pcm/internal/settings"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, s)
}

type settingsRequest struct {
	CompanyName           string `json:"company_name"`
	EmailNotifications    bool   `json:"email_notifications"`
	WhatsappNotifications bool   `json:"whatsapp_notifications"`
	PushNotifications     bool   `json:"push_notifications"`
	DailyReport           bool   `json:"daily_report"`
	ReportFrequency       string `json:"report_frequency"`
}

func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := ReadJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "VALIDATION", "corpo inválido", nil)
		return
	}

	user := middleware.GetUser(r.Context())
	saved, err := h.settings.Save(r.Context(), settings.Settings{
		CompanyName:           req.CompanyName,
		EmailNotifications:    req.EmailNotifications,
		WhatsappNotifications: req.WhatsappNotifications,
		PushNotifications:     req.PushNotifications,
		DailyReport:           req.DailyReport,
		ReportFrequency:       req.ReportFrequency,
	}, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}
