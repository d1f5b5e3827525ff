package workorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novohorizonte/pcm/internal/db"
	"github.com/novohorizonte/pcm/internal/repo"
	"github.com/novohorizonte/pcm/internal/stats"
)

// Repository concentra o acesso a work_orders no Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const orderColumns = `w.id, w.order_number, w.issue, w.status, w.priority, w.sector,
	w.maintenance_type, w.failure_type, w.technical_report,
	w.asset_id, w.technician_id, w.third_party_id, w.requester_id,
	w.created_at, w.date, w.responded_at, w.resolved_at, w.updated_at,
	w.downtime_hours, w.repair_hours, w.response_hours, w.estimated_hours,
	w.parts_cost, w.hourly_rate,
	a.name, a.categoria, t.name, tp.name`

const orderJoins = `FROM work_orders w
	LEFT JOIN assets a ON a.id = w.asset_id
	LEFT JOIN technicians t ON t.id = w.technician_id
	LEFT JOIN third_parties tp ON tp.id = w.third_party_id`

func scanOrder(row pgx.Row) (WorkOrder, error) {
	var w WorkOrder
	err := row.Scan(
		&w.ID, &w.OrderNumber, &w.Issue, &w.Status, &w.Priority, &w.Sector,
		&w.MaintenanceType, &w.FailureType, &w.TechnicalReport,
		&w.AssetID, &w.TechnicianID, &w.ThirdPartyID, &w.RequesterID,
		&w.CreatedAt, &w.Date, &w.RespondedAt, &w.ResolvedAt, &w.UpdatedAt,
		&w.DowntimeHours, &w.RepairHours, &w.ResponseHours, &w.EstimatedHours,
		&w.PartsCost, &w.HourlyRate,
		&w.AssetName, &w.AssetCategory, &w.TechnicianName, &w.ThirdPartyName,
	)
	return w, err
}

// Filter restringe listagens por janela de criação e status.
type Filter struct {
	Since  *time.Time
	Status string
}

// List devolve as ordens mais recentes primeiro.
func (r *Repository) List(ctx context.Context, f Filter) ([]WorkOrder, error) {
	query := `SELECT ` + orderColumns + ` ` + orderJoins + ` WHERE 1=1`
	args := []any{}
	if f.Since != nil {
		args = append(args, *f.Since)
		query += fmt.Sprintf(" AND w.created_at >= $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND w.status = $%d", len(args))
	}
	query += " ORDER BY w.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []WorkOrder
	for rows.Next() {
		w, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, w)
	}
	return orders, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (WorkOrder, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` `+orderJoins+` WHERE w.id = $1`, id)
	w, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return WorkOrder{}, repo.ErrNotFound
	}
	return w, err
}

// CreateParams são os campos aceitos na abertura de uma ordem.
type CreateParams struct {
	Issue           string
	Priority        string
	Sector          string
	MaintenanceType *string
	FailureType     *string
	AssetID         *uuid.UUID
	TechnicianID    *uuid.UUID
	ThirdPartyID    *uuid.UUID
	RequesterID     *uuid.UUID
	Date            *time.Time
	EstimatedHours  *float64
	HourlyRate      *float64
}

// Create gera o número sequencial do ano e insere a ordem na mesma
// transação, para que números não vazem em caso de rollback.
func (r *Repository) Create(ctx context.Context, p CreateParams, now time.Time) (WorkOrder, error) {
	var id uuid.UUID
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		prefix := fmt.Sprintf("OS-%d-", now.Year())

		var last int
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(CAST(split_part(order_number, '-', 3) AS int)), 0)
			   FROM work_orders
			  WHERE order_number LIKE $1`, prefix+"%").Scan(&last)
		if err != nil {
			return err
		}
		number := fmt.Sprintf("%s%04d", prefix, last+1)

		return tx.QueryRow(ctx,
			`INSERT INTO work_orders
				(order_number, issue, status, priority, sector,
				 maintenance_type, failure_type,
				 asset_id, technician_id, third_party_id, requester_id,
				 date, estimated_hours, hourly_rate, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
			 RETURNING id`,
			number, p.Issue, stats.StatusPendente, p.Priority, p.Sector,
			p.MaintenanceType, p.FailureType,
			p.AssetID, p.TechnicianID, p.ThirdPartyID, p.RequesterID,
			p.Date, p.EstimatedHours, p.HourlyRate, now,
		).Scan(&id)
	})
	if err != nil {
		return WorkOrder{}, err
	}
	return r.GetByID(ctx, id)
}

// UpdateParams são os campos mutáveis no acompanhamento da ordem.
type UpdateParams struct {
	ID              uuid.UUID
	Status          string
	TechnicianID    *uuid.UUID
	ThirdPartyID    *uuid.UUID
	TechnicalReport *string
	RespondedAt     *time.Time
	ResolvedAt      *time.Time
	DowntimeHours   *float64
	RepairHours     *float64
	ResponseHours   *float64
	PartsCost       *float64
	HourlyRate      *float64
	UpdatedAt       time.Time
}

// Update grava o avanço da ordem. responded_at e resolved_at só são
// sobrescritos quando informados, preservando o primeiro registro.
func (r *Repository) Update(ctx context.Context, p UpdateParams) (WorkOrder, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE work_orders SET
			status = $2,
			technician_id = COALESCE($3, technician_id),
			third_party_id = COALESCE($4, third_party_id),
			technical_report = COALESCE($5, technical_report),
			responded_at = COALESCE(responded_at, $6),
			resolved_at = COALESCE($7, resolved_at),
			downtime_hours = COALESCE($8, downtime_hours),
			repair_hours = COALESCE($9, repair_hours),
			response_hours = COALESCE($10, response_hours),
			parts_cost = COALESCE($11, parts_cost),
			hourly_rate = COALESCE($12, hourly_rate),
			updated_at = $13
		 WHERE id = $1`,
		p.ID, p.Status, p.TechnicianID, p.ThirdPartyID, p.TechnicalReport,
		p.RespondedAt, p.ResolvedAt, p.DowntimeHours, p.RepairHours,
		p.ResponseHours, p.PartsCost, p.HourlyRate, p.UpdatedAt)
	if err != nil {
		return WorkOrder{}, err
	}
	if tag.RowsAffected() == 0 {
		return WorkOrder{}, repo.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM work_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
