package backup

import (
	"context"
	"time"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/application/ledger"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
)

// BackupUseCase exporta un snapshot JSON con todos los datos del dueño y
// restaura el inventario de un snapshot a través de la regla de fusión del
// ledger. Ventas y auditoría del snapshot son historia: se exportan pero no
// se re-aplican al restaurar.
type BackupUseCase struct {
	items    repository.ItemRepository
	sales    repository.SaleRepository
	audit    repository.AuditRepository
	settings repository.SettingsRepository
	ledgerUC *ledger.LedgerUseCase
}

// NewBackupUseCase construye el caso de uso.
func NewBackupUseCase(
	items repository.ItemRepository,
	sales repository.SaleRepository,
	audit repository.AuditRepository,
	settings repository.SettingsRepository,
	ledgerUC *ledger.LedgerUseCase,
) *BackupUseCase {
	return &BackupUseCase{
		items:    items,
		sales:    sales,
		audit:    audit,
		settings: settings,
		ledgerUC: ledgerUC,
	}
}

// Export arma el snapshot completo del dueño: inventario, ventas, auditoría
// y ajustes.
func (uc *BackupUseCase) Export(ctx context.Context, ownerID string) (*dto.BackupDocument, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	items, err := uc.items.ListByOwner(ctx, ownerID, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.ListByOwner(ctx, ownerID, 0, 0)
	if err != nil {
		return nil, err
	}
	audit, err := uc.audit.ListRecent(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	doc := &dto.BackupDocument{
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Inventory: make([]dto.ItemResponse, 0, len(items)),
		Sales:     make([]dto.SaleResponse, 0, len(sales)),
		Audit:     make([]dto.AuditEntryResponse, 0, len(audit)),
	}
	for _, it := range items {
		doc.Inventory = append(doc.Inventory, dto.ItemResponse{
			ID:           it.ID,
			Name:         it.Name,
			Quantity:     it.Quantity,
			Category:     it.Category,
			Location:     it.Location,
			CustomFields: it.CustomFields,
			CreatedAt:    it.CreatedAt,
			UpdatedAt:    it.UpdatedAt,
		})
	}
	for _, s := range sales {
		doc.Sales = append(doc.Sales, dto.SaleResponse{
			ID:        s.ID,
			ItemID:    s.ItemID,
			ItemName:  s.ItemName,
			Quantity:  s.Quantity,
			CreatedAt: s.CreatedAt,
		})
	}
	for _, e := range audit {
		doc.Audit = append(doc.Audit, dto.AuditEntryResponse{
			ID:        e.ID,
			Action:    e.Action,
			ItemName:  e.ItemName,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	if settings != nil {
		doc.Settings = &dto.SettingsResponse{
			Theme:             settings.Theme,
			ShopName:          settings.ShopName,
			Locations:         settings.Locations,
			Categories:        settings.Categories,
			DebugMode:         settings.DebugMode,
			LowStockThreshold: settings.LowStockThreshold,
			UpdatedAt:         settings.UpdatedAt,
		}
	}
	return doc, nil
}

// Restore re-importa el inventario del snapshot con la regla de fusión
// (módulo id re-asignado); audita con el marker restore.
func (uc *BackupUseCase) Restore(ctx context.Context, ownerID string, doc *dto.BackupDocument) (dto.RestoreSummary, error) {
	if ownerID == "" {
		return dto.RestoreSummary{}, domain.ErrUnauthorized
	}
	if doc == nil || len(doc.Inventory) == 0 {
		return dto.RestoreSummary{}, domain.ErrInvalidInput
	}

	rows := make([]ledger.ImportRow, 0, len(doc.Inventory))
	for _, it := range doc.Inventory {
		rows = append(rows, ledger.ImportRow{
			Name:         it.Name,
			Quantity:     it.Quantity,
			Category:     it.Category,
			Location:     it.Location,
			CustomFields: it.CustomFields,
		})
	}
	summary, err := uc.ledgerUC.BulkImport(ctx, ownerID, rows, entity.ActionRestore)
	if err != nil {
		return dto.RestoreSummary{}, err
	}
	return dto.RestoreSummary(summary), nil
}
