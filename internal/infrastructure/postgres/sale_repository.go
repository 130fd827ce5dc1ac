package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementa SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO sales (id, owner_id, item_id, item_name, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.q.Exec(ctx, q, sale.ID, sale.OwnerID, sale.ItemID, sale.ItemName, sale.Quantity)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByOwner lista ventas del dueño, más recientes primero.
// limit <= 0 devuelve todas las filas.
func (r *SaleRepo) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Sale, error) {
	q := `
		SELECT id, owner_id, item_id, item_name, quantity, created_at
		FROM sales WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC`
	args := []any{ownerID}
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		q += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.ItemID, &s.ItemName, &s.Quantity, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("list sales scan: %w", err)
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}

func (r *SaleRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete sales by owner: %w", err)
	}
	return tag.RowsAffected(), nil
}
