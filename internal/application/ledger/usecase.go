package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
	"github.com/chainsync/chainsync-lite/pkg/logger"
)

// LedgerUseCase aplica las mutaciones del inventario (alta con fusión de
// duplicados, venta, edición, borrado, reset masivo) de forma transaccional:
// cada mutación escribe el item y exactamente una entrada de auditoría en la
// misma transacción, con bloqueo de fila (SELECT FOR UPDATE) para la
// secuencia leer-decidir-escribir.
type LedgerUseCase struct {
	txRunner TxRunner
	items    repository.ItemRepository // atado al pool, solo lecturas
	sales    repository.SaleRepository // atado al pool, solo lecturas
	log      *logger.Logger
	feed     Notifier // puede ser nil (sin suscriptores)
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	items repository.ItemRepository,
	sales repository.SaleRepository,
	log *logger.Logger,
	feed Notifier,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		items:    items,
		sales:    sales,
		log:      log,
		feed:     feed,
	}
}

// runTx ejecuta fn en una transacción. Si el almacenamiento reporta un
// conflicto de concurrencia (otro escritor ganó la carrera), reintenta la
// secuencia completa UNA vez con datos frescos; un segundo conflicto se
// devuelve al caller en vez de reintentar en silencio.
func (uc *LedgerUseCase) runTx(ctx context.Context, fn func(
	items repository.ItemRepository,
	sales repository.SaleRepository,
	audit repository.AuditRepository,
	settings repository.SettingsRepository,
	idem repository.IdempotencyRepository,
) error) error {
	err := uc.txRunner.Run(ctx, fn)
	if errors.Is(err, domain.ErrConflict) {
		uc.log.Warn().Err(err).Msg("conflicto de concurrencia, reintentando transacción")
		err = uc.txRunner.Run(ctx, fn)
	}
	return err
}

// wrapAuditErr marca un fallo al escribir auditoría como ErrAuditAppend.
// La transacción completa se revierte: la mutación no se aplica sin su rastro.
func wrapAuditErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", domain.ErrAuditAppend, err)
}

// publish notifica el cambio si hay feed configurado.
func (uc *LedgerUseCase) publish(ownerID, action string, collections ...string) {
	if uc.feed == nil {
		return
	}
	for _, c := range collections {
		uc.feed.Publish(ownerID, c, action)
	}
}
