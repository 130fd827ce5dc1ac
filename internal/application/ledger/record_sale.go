package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	domledger "github.com/chainsync/chainsync-lite/internal/domain/ledger"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// RecordSale descuenta stock por una venta, de forma atómica: el decremento
// del item, la creación del SaleRecord y la entrada de auditoría se aplican
// en una sola transacción, con la fila del item bloqueada (FOR UPDATE) para
// que la cantidad se re-valide en el punto de commit y no en el de lectura.
// Dos ventas concurrentes sobre el mismo item nunca pierden un decremento ni
// dejan el stock negativo.
//
// El lookup es por nombre; Location es opcional. Si el mismo nombre existe en
// varias ubicaciones y no se pasa Location, se descuenta de la ubicación con
// más stock (desempate determinista; ver DESIGN.md).
func (uc *LedgerUseCase) RecordSale(ctx context.Context, ownerID string, in dto.RecordSaleRequest) (string, error) {
	if ownerID == "" {
		return "", domain.ErrUnauthorized
	}
	name := domledger.NormalizeName(in.ItemName)
	if name == "" || in.Quantity < 1 {
		return "", domain.ErrInvalidInput
	}
	nameKey := domledger.NameKey(name)

	var (
		saleID  string
		applied bool
	)
	err := uc.runTx(ctx, func(
		items repository.ItemRepository,
		sales repository.SaleRepository,
		audit repository.AuditRepository,
		_ repository.SettingsRepository,
		idem repository.IdempotencyRepository,
	) error {
		if in.IdempotencyKey != "" {
			rec, err := idem.Get(ctx, ownerID, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if rec != nil {
				saleID = rec.ResultID
				return nil
			}
		}

		// Bloquea la(s) fila(s) candidatas; el orden es cantidad descendente.
		matches, err := items.FindByKeyForUpdate(ctx, ownerID, nameKey, in.Location)
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return domain.ErrNotFound
		}
		item := matches[0]
		if in.Location != "" && len(matches) > 1 {
			uc.log.Warn().
				Str("owner_id", ownerID).
				Str("name_key", nameKey).
				Str("location", in.Location).
				Int("matches", len(matches)).
				Msg("integridad de datos: más de una fila para el mismo item lógico")
		}

		// Re-validación en el punto de commit: la cantidad leída está
		// protegida por el lock de fila hasta el commit.
		if item.Quantity < in.Quantity {
			return &domain.InsufficientStockError{
				ItemName:  item.Name,
				Requested: in.Quantity,
				Available: item.Quantity,
			}
		}

		now := time.Now()
		newQty := item.Quantity - in.Quantity
		if err := items.UpdateQuantity(ctx, item.ID, newQty, now); err != nil {
			return err
		}

		sale := &entity.Sale{
			OwnerID:   ownerID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  in.Quantity,
			CreatedAt: now,
		}
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}
		saleID = sale.ID
		applied = true

		entry := &entity.AuditEntry{
			OwnerID:  ownerID,
			Action:   entity.ActionSale,
			ItemName: item.Name,
			Details: map[string]any{
				"quantity_sold": in.Quantity,
				"new_stock":     newQty,
				"location":      item.Location,
			},
		}
		if err := audit.Append(ctx, entry); err != nil {
			return wrapAuditErr(err)
		}

		if in.IdempotencyKey != "" {
			err := idem.Reserve(ctx, &entity.IdempotencyRecord{
				OwnerID:   ownerID,
				Key:       in.IdempotencyKey,
				Operation: entity.OpRecordSale,
				ResultID:  saleID,
			})
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if applied {
		uc.publish(ownerID, entity.ActionSale, CollectionInventory, CollectionSales, CollectionAudit)
	}
	return saleID, nil
}

// ListSales lista las ventas del dueño, más recientes primero.
func (uc *LedgerUseCase) ListSales(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Sale, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	return uc.sales.ListByOwner(ctx, ownerID, limit, offset)
}
