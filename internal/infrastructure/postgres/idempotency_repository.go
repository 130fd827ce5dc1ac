package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

var _ repository.IdempotencyRepository = (*IdempotencyRepo)(nil)

// IdempotencyRepo implementa IdempotencyRepository sobre PostgreSQL.
// Reserve se apoya en la PK (owner_id, key): dos reservas de la misma clave
// no pueden commitear ambas.
type IdempotencyRepo struct {
	q Querier
}

// NewIdempotencyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIdempotencyRepository(q Querier) *IdempotencyRepo {
	return &IdempotencyRepo{q: q}
}

// Get devuelve nil, nil si la clave no fue usada.
func (r *IdempotencyRepo) Get(ctx context.Context, ownerID, key string) (*entity.IdempotencyRecord, error) {
	const q = `
		SELECT owner_id, key, operation, result_id, created_at
		FROM idempotency_keys WHERE owner_id = $1 AND key = $2`
	var rec entity.IdempotencyRecord
	err := r.q.QueryRow(ctx, q, ownerID, key).Scan(
		&rec.OwnerID, &rec.Key, &rec.Operation, &rec.ResultID, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	return &rec, nil
}

func (r *IdempotencyRepo) Reserve(ctx context.Context, rec *entity.IdempotencyRecord) error {
	const q = `
		INSERT INTO idempotency_keys (owner_id, key, operation, result_id, created_at)
		VALUES ($1, $2, $3, $4, now())`
	_, err := r.q.Exec(ctx, q, rec.OwnerID, rec.Key, rec.Operation, rec.ResultID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: clave de idempotencia ya usada", domain.ErrDuplicate)
		}
		return fmt.Errorf("reserve idempotency key: %w", err)
	}
	return nil
}

func (r *IdempotencyRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM idempotency_keys WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete idempotency keys by owner: %w", err)
	}
	return tag.RowsAffected(), nil
}
