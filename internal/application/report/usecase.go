package report

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	appsettings "github.com/chainsync/chainsync-lite/internal/application/settings"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
	"github.com/chainsync/chainsync-lite/pkg/logger"
)

// PDFGenerator genera el reporte de inventario en PDF.
type PDFGenerator interface {
	InventoryReport(shopName string, items []*entity.Item, summary *dto.SummaryResponse) ([]byte, error)
}

// ReportUseCase arma reportes de inventario: resumen agregado, export CSV
// y PDF. Lee fuera de transacción; un reporte es una foto, no un lock.
type ReportUseCase struct {
	items    repository.ItemRepository
	settings *appsettings.SettingsUseCase
	pdf      PDFGenerator
	log      *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(items repository.ItemRepository, settings *appsettings.SettingsUseCase, pdf PDFGenerator, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{items: items, settings: settings, pdf: pdf, log: log}
}

// Summary calcula totales, conteo por categoría, valor del inventario
// (campo custom "price" cuando existe) y los items en stock bajo según el
// umbral configurado del dueño.
func (uc *ReportUseCase) Summary(ctx context.Context, ownerID string) (*dto.SummaryResponse, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	items, err := uc.items.ListByOwner(ctx, ownerID, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	cfg, err := uc.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := &dto.SummaryResponse{
		InventoryValue: decimal.Zero,
		Categories:     []dto.CategoryCount{},
		LowStock:       []dto.LowStockItem{},
		Threshold:      cfg.LowStockThreshold,
	}
	byCategory := make(map[string]*dto.CategoryCount)
	for _, it := range items {
		out.TotalItems++
		out.TotalUnits += it.Quantity

		cc, ok := byCategory[it.Category]
		if !ok {
			cc = &dto.CategoryCount{Category: it.Category}
			byCategory[it.Category] = cc
		}
		cc.Items++
		cc.Units += it.Quantity

		if raw, ok := it.CustomFields["price"]; ok {
			price, perr := decimal.NewFromString(raw)
			if perr != nil {
				// Precio malformado: se ignora para el valor total.
				uc.log.Warn().Str("item_id", it.ID).Str("price", raw).Msg("precio custom no numérico, omitido del valor")
			} else {
				out.InventoryValue = out.InventoryValue.Add(price.Mul(decimal.NewFromInt(it.Quantity)))
			}
		}

		if it.Quantity <= cfg.LowStockThreshold {
			out.LowStock = append(out.LowStock, dto.LowStockItem{
				ID:       it.ID,
				Name:     it.Name,
				Quantity: it.Quantity,
				Location: it.Location,
			})
		}
	}

	for _, cc := range byCategory {
		out.Categories = append(out.Categories, *cc)
	}
	sort.Slice(out.Categories, func(i, j int) bool { return out.Categories[i].Category < out.Categories[j].Category })
	sort.Slice(out.LowStock, func(i, j int) bool { return out.LowStock[i].Quantity < out.LowStock[j].Quantity })
	return out, nil
}

// InventoryPDF genera el reporte PDF del inventario completo del dueño.
func (uc *ReportUseCase) InventoryPDF(ctx context.Context, ownerID string) ([]byte, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	items, err := uc.items.ListByOwner(ctx, ownerID, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	summary, err := uc.Summary(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.settings.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.InventoryReport(cfg.ShopName, items, summary)
}
