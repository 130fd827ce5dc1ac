package ledger

import (
	"context"
	"time"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	domledger "github.com/chainsync/chainsync-lite/internal/domain/ledger"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// ImportRow fila ya parseada de una importación (CSV o restore).
type ImportRow struct {
	Name         string
	Quantity     int64
	Category     string
	Location     string
	CustomFields map[string]string
}

// BulkImport aplica filas importadas a través de la misma regla de fusión que
// UpsertItem, en una sola transacción. Filas inválidas (nombre vacío,
// cantidad < 1) se saltan y se cuentan, no abortan la importación. Cada fila
// audita import_add o import_update; al final se escribe una entrada marker
// (bulk_import o restore, según origen) con los conteos.
func (uc *LedgerUseCase) BulkImport(ctx context.Context, ownerID string, rows []ImportRow, marker string) (dto.ImportSummary, error) {
	var summary dto.ImportSummary
	if ownerID == "" {
		return summary, domain.ErrUnauthorized
	}
	if marker != entity.ActionBulkImport && marker != entity.ActionRestore {
		return summary, domain.ErrInvalidInput
	}
	if len(rows) == 0 {
		return summary, domain.ErrInvalidInput
	}

	err := uc.runTx(ctx, func(
		items repository.ItemRepository,
		_ repository.SaleRepository,
		audit repository.AuditRepository,
		_ repository.SettingsRepository,
		_ repository.IdempotencyRepository,
	) error {
		// Reinicia conteos: el closure puede reintentarse completo tras un
		// conflicto de concurrencia.
		summary = dto.ImportSummary{}
		now := time.Now()
		for _, row := range rows {
			candidate := &entity.Item{
				OwnerID:      ownerID,
				Name:         row.Name,
				Quantity:     row.Quantity,
				Category:     row.Category,
				Location:     row.Location,
				CustomFields: row.CustomFields,
			}
			domledger.ApplyDefaults(candidate)
			if candidate.Name == "" || row.Quantity < 1 {
				summary.Skipped++
				continue
			}

			matches, err := items.FindByKeyForUpdate(ctx, ownerID, candidate.NameKey, candidate.Location)
			if err != nil {
				return err
			}
			var entry *entity.AuditEntry
			if len(matches) > 0 {
				existing := matches[0]
				newQty := existing.Quantity + row.Quantity
				if err := items.UpdateQuantity(ctx, existing.ID, newQty, now); err != nil {
					return err
				}
				summary.Updated++
				entry = &entity.AuditEntry{
					OwnerID:  ownerID,
					Action:   entity.ActionImportUpdate,
					ItemName: existing.Name,
					Details: map[string]any{
						"quantity_added": row.Quantity,
						"new_quantity":   newQty,
						"location":       existing.Location,
					},
				}
			} else {
				candidate.CreatedAt = now
				candidate.UpdatedAt = now
				if err := items.Create(ctx, candidate); err != nil {
					return err
				}
				summary.Added++
				entry = &entity.AuditEntry{
					OwnerID:  ownerID,
					Action:   entity.ActionImportAdd,
					ItemName: candidate.Name,
					Details: map[string]any{
						"quantity": row.Quantity,
						"category": candidate.Category,
						"location": candidate.Location,
					},
				}
			}
			if err := audit.Append(ctx, entry); err != nil {
				return wrapAuditErr(err)
			}
		}

		return wrapAuditErr(audit.Append(ctx, &entity.AuditEntry{
			OwnerID:  ownerID,
			Action:   marker,
			ItemName: "N/A",
			Details: map[string]any{
				"added":   summary.Added,
				"updated": summary.Updated,
				"skipped": summary.Skipped,
			},
		}))
	})
	if err != nil {
		return dto.ImportSummary{}, err
	}
	uc.publish(ownerID, marker, CollectionInventory, CollectionAudit)
	return summary, nil
}
