// Package inventory mantém o almoxarifado de peças. O status de cada
// item é derivado da quantidade, nunca informado pelo cliente.
package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/novohorizonte/pcm/internal/repo"
)

// Status de item de estoque.
const (
	StatusNormal   = "Normal"
	StatusBaixo    = "Baixo Estoque"
	StatusEsgotado = "Esgotado"
)

// Item é uma peça ou insumo do almoxarifado.
type Item struct {
	ID        uuid.UUID `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Category  *string   `json:"category,omitempty"`
	Quantity  int       `json:"quantity"`
	MinStock  int       `json:"min_stock"`
	UnitValue float64   `json:"unit_value"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DeriveStatus calcula o status a partir da quantidade e do mínimo.
func DeriveStatus(quantity, minStock int) string {
	switch {
	case quantity <= 0:
		return StatusEsgotado
	case quantity <= minStock:
		return StatusBaixo
	default:
		return StatusNormal
	}
}

// Summary agrega a posição do almoxarifado.
type Summary struct {
	TotalItems    int     `json:"total_items"`
	TotalValue    float64 `json:"total_value"`
	CriticalCount int     `json:"critical_count"`
}

// Summarize valora o estoque (quantidade vezes valor unitário) e conta
// os itens abaixo do mínimo.
func Summarize(items []Item) Summary {
	var s Summary
	for _, it := range items {
		s.TotalItems++
		s.TotalValue += float64(it.Quantity) * it.UnitValue
		if it.Status != StatusNormal {
			s.CriticalCount++
		}
	}
	return s
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const itemColumns = `id, sku, name, category, quantity, min_stock, unit_value, status, created_at`

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.SKU, &it.Name, &it.Category,
		&it.Quantity, &it.MinStock, &it.UnitValue, &it.Status, &it.CreatedAt)
	return it, err
}

func (r *Repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemColumns+` FROM inventory_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ItemParams são os campos aceitos no cadastro de um item. O status é
// sempre derivado no servidor.
type ItemParams struct {
	SKU       string
	Name      string
	Category  *string
	Quantity  int
	MinStock  int
	UnitValue float64
}

func (r *Repository) Create(ctx context.Context, p ItemParams) (Item, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO inventory_items (sku, name, category, quantity, min_stock, unit_value, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7, now())
		 RETURNING `+itemColumns,
		p.SKU, p.Name, p.Category, p.Quantity, p.MinStock, p.UnitValue,
		DeriveStatus(p.Quantity, p.MinStock))
	return scanItem(row)
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, p ItemParams) (Item, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE inventory_items
		    SET sku=$2, name=$3, category=$4, quantity=$5, min_stock=$6, unit_value=$7, status=$8
		  WHERE id = $1
		 RETURNING `+itemColumns,
		id, p.SKU, p.Name, p.Category, p.Quantity, p.MinStock, p.UnitValue,
		DeriveStatus(p.Quantity, p.MinStock))
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, repo.ErrNotFound
	}
	return it, err
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
