package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsync/chainsync-lite/internal/application/settings"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
	"github.com/chainsync/chainsync-lite/internal/domain/repository"
	"github.com/chainsync/chainsync-lite/pkg/logger"
)

const testOwner = "00000000-0000-0000-0000-000000000001"

// stubItems implementa ItemRepository devolviendo una lista fija; los
// reportes solo leen.
type stubItems struct {
	items []*entity.Item
}

func (s *stubItems) Create(context.Context, *entity.Item) error { return nil }
func (s *stubItems) GetByID(context.Context, string) (*entity.Item, error) {
	return nil, domain.ErrNotFound
}
func (s *stubItems) FindByKey(context.Context, string, string, string) ([]*entity.Item, error) {
	return nil, nil
}
func (s *stubItems) FindByKeyForUpdate(context.Context, string, string, string) ([]*entity.Item, error) {
	return nil, nil
}
func (s *stubItems) UpdateQuantity(context.Context, string, int64, time.Time) error { return nil }
func (s *stubItems) Update(context.Context, *entity.Item) error                     { return nil }
func (s *stubItems) Delete(context.Context, string) error                           { return nil }
func (s *stubItems) ListByOwner(_ context.Context, ownerID string, _ repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range s.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}
func (s *stubItems) DeleteByOwner(context.Context, string) (int64, error) { return 0, nil }

// stubSettingsRepo devuelve siempre "sin ajustes" para que Get caiga en los
// valores por defecto (umbral 5).
type stubSettingsRepo struct{}

func (stubSettingsRepo) Get(context.Context, string) (*entity.Settings, error) { return nil, nil }
func (stubSettingsRepo) Upsert(context.Context, *entity.Settings) error        { return nil }
func (stubSettingsRepo) Delete(context.Context, string) error                  { return nil }

func newTestReportUC(items []*entity.Item) *ReportUseCase {
	settingsUC := settings.NewSettingsUseCase(stubSettingsRepo{})
	return NewReportUseCase(&stubItems{items: items}, settingsUC, nil, logger.Nop())
}

func TestSummary_TotalesYStockBajo(t *testing.T) {
	uc := newTestReportUC([]*entity.Item{
		{ID: "1", OwnerID: testOwner, Name: "Widget", Quantity: 10, Category: "Ferretería", Location: "Store",
			CustomFields: map[string]string{"price": "2.50"}},
		{ID: "2", OwnerID: testOwner, Name: "Gadget", Quantity: 3, Category: "Ferretería", Location: "Store"},
		{ID: "3", OwnerID: testOwner, Name: "Cable", Quantity: 7, Category: "Eléctrico", Location: "Bodega",
			CustomFields: map[string]string{"price": "no-numérico"}},
		{ID: "4", OwnerID: "otro-dueño", Name: "Ajeno", Quantity: 1},
	})

	out, err := uc.Summary(context.Background(), testOwner)
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalItems, "no cuenta items de otros dueños")
	assert.Equal(t, int64(20), out.TotalUnits)
	// Solo el precio válido entra al valor: 10 × 2.50.
	assert.True(t, out.InventoryValue.Equal(decimal.RequireFromString("25")),
		"valor esperado 25, obtenido %s", out.InventoryValue)

	require.Len(t, out.Categories, 2)
	assert.Equal(t, "Eléctrico", out.Categories[0].Category)
	assert.Equal(t, "Ferretería", out.Categories[1].Category)
	assert.Equal(t, int64(13), out.Categories[1].Units)

	// Umbral por defecto 5: Gadget (3) está en stock bajo.
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, "Gadget", out.LowStock[0].Name)
	assert.Equal(t, int64(5), out.Threshold)
}

func TestSummary_SinAutenticacion(t *testing.T) {
	uc := newTestReportUC(nil)
	_, err := uc.Summary(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
