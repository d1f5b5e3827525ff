// Package asset mantém o cadastro de ativos e a contagem por categoria
// usada no rollup executivo.
package asset

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novohorizonte/pcm/internal/repo"
	"github.com/novohorizonte/pcm/internal/stats"
)

// Asset é um equipamento ou instalação sob manutenção.
type Asset struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	Model     *string   `json:"model,omitempty"`
	Categoria *string   `json:"categoria,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const assetColumns = `id, code, name, sector, model, categoria, status, created_at`

func scanAsset(row pgx.Row) (Asset, error) {
	var a Asset
	err := row.Scan(&a.ID, &a.Code, &a.Name, &a.Sector, &a.Model,
		&a.Categoria, &a.Status, &a.CreatedAt)
	return a, err
}

func (r *Repository) List(ctx context.Context) ([]Asset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assetColumns+` FROM assets ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Asset, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Asset{}, repo.ErrNotFound
	}
	return a, err
}

// CreateParams são os campos aceitos no cadastro de um ativo.
type CreateParams struct {
	Code      string
	Name      string
	Sector    string
	Model     *string
	Categoria *string
	Status    string
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (Asset, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO assets (code, name, sector, model, categoria, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6, now())
		 RETURNING `+assetColumns,
		p.Code, p.Name, p.Sector, p.Model, p.Categoria, p.Status)
	return scanAsset(row)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, p CreateParams) (Asset, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE assets SET code=$2, name=$3, sector=$4, model=$5, categoria=$6, status=$7
		 WHERE id = $1
		 RETURNING `+assetColumns,
		id, p.Code, p.Name, p.Sector, p.Model, p.Categoria, p.Status)
	a, err := scanAsset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Asset{}, repo.ErrNotFound
	}
	return a, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// CountByCategory devolve o total de ativos por categoria normalizada,
// sempre com as três chaves presentes.
func CountByCategory(assets []Asset) map[string]int {
	counts := map[string]int{
		stats.CategoryMaquina: 0,
		stats.CategoryPredial: 0,
		stats.CategoryOutros:  0,
	}
	for _, a := range assets {
		raw := ""
		if a.Categoria != nil {
			raw = *a.Categoria
		}
		cat, ok := stats.ClassifyText(raw)
		if !ok {
			cat = stats.CategoryOutros
		}
		counts[cat]++
	}
	return counts
}
