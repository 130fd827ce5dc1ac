package repository

import (
	"context"

	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

// AuditRepository define el puerto del log de mutaciones: append-only,
// lectura "últimas N" por timestamp descendente (desempate por Seq)
// y borrado masivo por dueño.
type AuditRepository interface {
	Append(ctx context.Context, e *entity.AuditEntry) error
	ListRecent(ctx context.Context, ownerID string, limit int) ([]*entity.AuditEntry, error)
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
