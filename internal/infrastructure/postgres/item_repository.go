package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementa ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, owner_id, name, name_key, quantity, category, location, custom_fields, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.OwnerID, &it.Name, &it.NameKey, &it.Quantity,
		&it.Category, &it.Location, &it.CustomFields, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO items
			(id, owner_id, name, name_key, quantity, category, location, custom_fields, created_at, updated_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(ctx, q,
		item.ID, item.OwnerID, item.Name, item.NameKey, item.Quantity,
		item.Category, item.Location, item.CustomFields,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item ya existe para (dueño, nombre, ubicación)", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	it, err := scanItem(r.q.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return it, nil
}

// FindByKey busca por (owner, name_key) y opcionalmente ubicación exacta,
// ordenado por cantidad descendente.
func (r *ItemRepo) FindByKey(ctx context.Context, ownerID, nameKey, location string) ([]*entity.Item, error) {
	return r.findByKey(ctx, ownerID, nameKey, location, false)
}

// FindByKeyForUpdate es FindByKey con bloqueo de filas (SELECT FOR UPDATE);
// solo tiene sentido dentro de una transacción.
func (r *ItemRepo) FindByKeyForUpdate(ctx context.Context, ownerID, nameKey, location string) ([]*entity.Item, error) {
	return r.findByKey(ctx, ownerID, nameKey, location, true)
}

func (r *ItemRepo) findByKey(ctx context.Context, ownerID, nameKey, location string, forUpdate bool) ([]*entity.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1 AND name_key = $2`
	args := []any{ownerID, nameKey}
	if location != "" {
		q += ` AND location = $3`
		args = append(args, location)
	}
	q += ` ORDER BY quantity DESC, created_at ASC`
	if forUpdate {
		q += ` FOR UPDATE`
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find items by key: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("find items by key scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateQuantity escribe sólo la cantidad; el resto del item no cambia.
func (r *ItemRepo) UpdateQuantity(ctx context.Context, id string, quantity int64, updatedAt time.Time) error {
	const q = `UPDATE items SET quantity = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, q, id, quantity, updatedAt)
	if err != nil {
		return fmt.Errorf("update item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	const q = `
		UPDATE items
		SET name = $2, name_key = $3, quantity = $4, category = $5,
		    location = $6, custom_fields = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, q,
		item.ID, item.Name, item.NameKey, item.Quantity,
		item.Category, item.Location, item.CustomFields,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item ya existe para (dueño, nombre, ubicación)", domain.ErrDuplicate)
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID string, f repository.ItemFilter) ([]*entity.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = $1`
	args := []any{ownerID}
	if f.Category != "" {
		args = append(args, f.Category)
		q += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if f.Location != "" {
		args = append(args, f.Location)
		q += fmt.Sprintf(` AND location = $%d`, len(args))
	}
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		q += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	q += ` ORDER BY name_key ASC, location ASC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("list items scan: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ItemRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete items by owner: %w", err)
	}
	return tag.RowsAffected(), nil
}
