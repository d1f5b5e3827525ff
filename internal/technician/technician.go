// Package technician mantém o cadastro dos executores de manutenção:
// técnicos internos e empresas terceirizadas.
package technician

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novohorizonte/pcm/internal/repo"
)

// Technician é um executor interno de ordens de serviço.
type Technician struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Specialty  *string   `json:"specialty,omitempty"`
	Contact    *string   `json:"contact,omitempty"`
	HourlyRate *float64  `json:"hourly_rate,omitempty"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	Status     string    `json:"status"`
}

// ThirdParty é uma empresa terceirizada contratada por hora.
type ThirdParty struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Contact    *string   `json:"contact,omitempty"`
	HourlyRate *float64  `json:"hourly_rate,omitempty"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const technicianColumns = `id, name, specialty, contact, hourly_rate, avatar_url, status`

func scanTechnician(row pgx.Row) (Technician, error) {
	var t Technician
	err := row.Scan(&t.ID, &t.Name, &t.Specialty, &t.Contact,
		&t.HourlyRate, &t.AvatarURL, &t.Status)
	return t, err
}

func (r *Repository) ListTechnicians(ctx context.Context) ([]Technician, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+technicianColumns+` FROM technicians ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Technician
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// TechnicianParams são os campos aceitos no cadastro de um técnico.
type TechnicianParams struct {
	Name       string
	Specialty  *string
	Contact    *string
	HourlyRate *float64
	AvatarURL  *string
	Status     string
}

func (r *Repository) CreateTechnician(ctx context.Context, p TechnicianParams) (Technician, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO technicians (name, specialty, contact, hourly_rate, avatar_url, status)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING `+technicianColumns,
		p.Name, p.Specialty, p.Contact, p.HourlyRate, p.AvatarURL, p.Status)
	return scanTechnician(row)
}

func (r *Repository) UpdateTechnician(ctx context.Context, id uuid.UUID, p TechnicianParams) (Technician, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE technicians
		    SET name=$2, specialty=$3, contact=$4, hourly_rate=$5, avatar_url=$6, status=$7
		  WHERE id = $1
		 RETURNING `+technicianColumns,
		id, p.Name, p.Specialty, p.Contact, p.HourlyRate, p.AvatarURL, p.Status)
	t, err := scanTechnician(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Technician{}, repo.ErrNotFound
	}
	return t, err
}

func (r *Repository) DeleteTechnician(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM technicians WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *Repository) ListThirdParties(ctx context.Context) ([]ThirdParty, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, contact, hourly_rate FROM third_parties ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []ThirdParty
	for rows.Next() {
		var tp ThirdParty
		if err := rows.Scan(&tp.ID, &tp.Name, &tp.Contact, &tp.HourlyRate); err != nil {
			return nil, err
		}
		list = append(list, tp)
	}
	return list, rows.Err()
}

// ThirdPartyParams são os campos aceitos no cadastro de uma terceirizada.
type ThirdPartyParams struct {
	Name       string
	Contact    *string
	HourlyRate *float64
}

func (r *Repository) CreateThirdParty(ctx context.Context, p ThirdPartyParams) (ThirdParty, error) {
	var tp ThirdParty
	err := r.pool.QueryRow(ctx,
		`INSERT INTO third_parties (name, contact, hourly_rate)
		 VALUES ($1,$2,$3)
		 RETURNING id, name, contact, hourly_rate`,
		p.Name, p.Contact, p.HourlyRate).
		Scan(&tp.ID, &tp.Name, &tp.Contact, &tp.HourlyRate)
	return tp, err
}

func (r *Repository) DeleteThirdParty(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM third_parties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
