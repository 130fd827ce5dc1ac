package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chainsync/chainsync-lite/internal/application/ledger"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Los conflictos del motor (serialization failure,
// deadlock) se traducen a domain.ErrConflict para que el caso de uso
// reintente con una transacción nueva.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	sales repository.SaleRepository,
	audit repository.AuditRepository,
	settings repository.SettingsRepository,
	idem repository.IdempotencyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewItemRepository(tx)
	saleRepo := NewSaleRepository(tx)
	auditRepo := NewAuditRepository(tx)
	settingsRepo := NewSettingsRepository(tx)
	idemRepo := NewIdempotencyRepository(tx)

	if err := fn(itemRepo, saleRepo, auditRepo, settingsRepo, idemRepo); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
