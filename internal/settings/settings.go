// Package settings mantém as preferências globais da aplicação em uma
// única linha de app_settings.
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Settings são as preferências globais de notificação e relatórios.
type Settings struct {
	CompanyName           string     `json:"company_name"`
	EmailNotifications    bool       `json:"email_notifications"`
	WhatsappNotifications bool       `json:"whatsapp_notifications"`
	PushNotifications     bool       `json:"push_notifications"`
	DailyReport           bool       `json:"daily_report"`
	ReportFrequency       string     `json:"report_frequency"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty"`
	UpdatedBy             *uuid.UUID `json:"updated_by,omitempty"`
}

// Defaults são os valores usados antes da primeira gravação.
func Defaults() Settings {
	return Settings{
		CompanyName:        "Novo Horizonte Alumínios",
		EmailNotifications: true,
		DailyReport:        true,
		ReportFrequency:    "weekly",
	}
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get devolve a linha única de configuração, ou os padrões quando
// nenhuma gravação aconteceu ainda.
func (r *Repository) Get(ctx context.Context) (Settings, error) {
	var s Settings
	err := r.pool.QueryRow(ctx,
		`SELECT company_name, email_notifications, whatsapp_notifications,
		        push_notifications, daily_report, report_frequency,
		        updated_at, updated_by
		   FROM app_settings WHERE id = 1`).
		Scan(&s.CompanyName, &s.EmailNotifications, &s.WhatsappNotifications,
			&s.PushNotifications, &s.DailyReport, &s.ReportFrequency,
			&s.UpdatedAt, &s.UpdatedBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return Defaults(), nil
	}
	return s, err
}

// Save grava as preferências registrando quem alterou.
func (r *Repository) Save(ctx context.Context, s Settings, updatedBy uuid.UUID) (Settings, error) {
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO app_settings
			(id, company_name, email_notifications, whatsapp_notifications,
			 push_notifications, daily_report, report_frequency, updated_at, updated_by)
		 VALUES (1,$1,$2,$3,$4,$5,$6,$7,$8)
		 ON CONFLICT (id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			email_notifications = EXCLUDED.email_notifications,
			whatsapp_notifications = EXCLUDED.whatsapp_notifications,
			push_notifications = EXCLUDED.push_notifications,
			daily_report = EXCLUDED.daily_report,
			report_frequency = EXCLUDED.report_frequency,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`,
		s.CompanyName, s.EmailNotifications, s.WhatsappNotifications,
		s.PushNotifications, s.DailyReport, s.ReportFrequency, now, updatedBy)
	if err != nil {
		return Settings{}, err
	}
	s.UpdatedAt = &now
	s.UpdatedBy = &updatedBy
	return s, nil
}
