package auditlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/pkg/logger"
)

const testOwner = "00000000-0000-0000-0000-000000000001"

type memAuditRepo struct {
	entries   []*entity.AuditEntry
	failNext  bool
	lastLimit int
}

func (r *memAuditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	if r.failNext {
		return errors.New("storage caído")
	}
	e.Seq = int64(len(r.entries) + 1)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *memAuditRepo) ListRecent(_ context.Context, ownerID string, limit int) ([]*entity.AuditEntry, error) {
	r.lastLimit = limit
	var out []*entity.AuditEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].OwnerID == ownerID {
			out = append(out, r.entries[i])
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memAuditRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	var kept []*entity.AuditEntry
	var n int64
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			n++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return n, nil
}

func TestAppend_YLectura(t *testing.T) {
	repo := &memAuditRepo{}
	uc := NewAuditLogUseCase(repo, logger.Nop())
	ctx := context.Background()

	require.NoError(t, uc.Append(ctx, testOwner, entity.ActionAdd, "Widget", map[string]any{"quantity": 10}))
	require.NoError(t, uc.Append(ctx, testOwner, entity.ActionSale, "Widget", map[string]any{"quantity_sold": 3}))

	entries, err := uc.RecentEntries(ctx, testOwner, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Más reciente primero.
	assert.Equal(t, entity.ActionSale, entries[0].Action)
	assert.Equal(t, entity.ActionAdd, entries[1].Action)
}

func TestAppend_FalloSeReportaNoSeDescarta(t *testing.T) {
	repo := &memAuditRepo{failNext: true}
	uc := NewAuditLogUseCase(repo, logger.Nop())

	err := uc.Append(context.Background(), testOwner, entity.ActionAdd, "Widget", nil)
	assert.ErrorIs(t, err, domain.ErrAuditAppend)
}

func TestAppend_Validaciones(t *testing.T) {
	repo := &memAuditRepo{}
	uc := NewAuditLogUseCase(repo, logger.Nop())
	ctx := context.Background()

	assert.ErrorIs(t, uc.Append(ctx, "", entity.ActionAdd, "x", nil), domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.Append(ctx, testOwner, "", "x", nil), domain.ErrInvalidInput)

	// Sin nombre de item se registra como N/A, no se rechaza.
	require.NoError(t, uc.Append(ctx, testOwner, entity.ActionBulkImport, "", nil))
	assert.Equal(t, "N/A", repo.entries[0].ItemName)
}

func TestRecentEntries_LimitesPorDefectoYMaximo(t *testing.T) {
	repo := &memAuditRepo{}
	uc := NewAuditLogUseCase(repo, logger.Nop())
	ctx := context.Background()

	_, err := uc.RecentEntries(ctx, testOwner, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, repo.lastLimit, "limit 0 usa el default")

	_, err = uc.RecentEntries(ctx, testOwner, 9999)
	require.NoError(t, err)
	assert.Equal(t, 500, repo.lastLimit, "limit excesivo se recorta")
}

func TestClear(t *testing.T) {
	repo := &memAuditRepo{}
	uc := NewAuditLogUseCase(repo, logger.Nop())
	ctx := context.Background()

	require.NoError(t, uc.Append(ctx, testOwner, entity.ActionAdd, "Widget", nil))
	require.NoError(t, uc.Append(ctx, "otro-dueño", entity.ActionAdd, "Ajeno", nil))

	deleted, err := uc.Clear(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "otro-dueño", repo.entries[0].OwnerID)
}
