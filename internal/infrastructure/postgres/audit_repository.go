package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementa AuditRepository sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: no hay Update.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserta una entrada; seq lo asigna la secuencia de la tabla.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO audit_entries (id, owner_id, action, item_name, details, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING seq, created_at`
	err := r.q.QueryRow(ctx, q, e.ID, e.OwnerID, e.Action, e.ItemName, e.Details).
		Scan(&e.Seq, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas entradas del dueño, más recientes primero;
// seq desempata timestamps iguales. limit <= 0 devuelve todas.
func (r *AuditRepo) ListRecent(ctx context.Context, ownerID string, limit int) ([]*entity.AuditEntry, error) {
	q := `
		SELECT id, owner_id, action, item_name, details, seq, created_at
		FROM audit_entries WHERE owner_id = $1
		ORDER BY created_at DESC, seq DESC`
	args := []any{ownerID}
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.q.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Action, &e.ItemName, &e.Details, &e.Seq, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("list audit entries scan: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *AuditRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM audit_entries WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("delete audit entries by owner: %w", err)
	}
	return tag.RowsAffected(), nil
}
