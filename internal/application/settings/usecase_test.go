package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsync/chainsync-lite/internal/application/dto"
	"github.com/chainsync/chainsync-lite/internal/domain"
	"github.com/chainsync/chainsync-lite/internal/domain/entity"
)

const testOwner = "00000000-0000-0000-0000-000000000001"

type memSettingsRepo struct {
	byOwner map[string]*entity.Settings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{byOwner: map[string]*entity.Settings{}}
}

func (r *memSettingsRepo) Get(_ context.Context, ownerID string) (*entity.Settings, error) {
	s, ok := r.byOwner[ownerID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSettingsRepo) Upsert(_ context.Context, s *entity.Settings) error {
	cp := *s
	r.byOwner[s.OwnerID] = &cp
	return nil
}

func (r *memSettingsRepo) Delete(_ context.Context, ownerID string) error {
	delete(r.byOwner, ownerID)
	return nil
}

func TestGet_DevuelveDefaultsSiNoHayAjustes(t *testing.T) {
	uc := NewSettingsUseCase(newMemSettingsRepo())

	s, err := uc.Get(context.Background(), testOwner)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultTheme, s.Theme)
	assert.Equal(t, []string{"Store"}, s.Locations)
	assert.Equal(t, int64(entity.DefaultLowStockThreshold), s.LowStockThreshold)
}

func TestSave_ActualizacionParcial(t *testing.T) {
	repo := newMemSettingsRepo()
	uc := NewSettingsUseCase(repo)
	ctx := context.Background()

	theme := "dark"
	s, err := uc.Save(ctx, testOwner, dto.UpdateSettingsRequest{Theme: &theme})
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)

	// Un segundo save parcial no pisa los campos no enviados.
	threshold := int64(10)
	s, err = uc.Save(ctx, testOwner, dto.UpdateSettingsRequest{LowStockThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, "dark", s.Theme)
	assert.Equal(t, int64(10), s.LowStockThreshold)
}

func TestSave_Validaciones(t *testing.T) {
	uc := NewSettingsUseCase(newMemSettingsRepo())
	ctx := context.Background()

	theme := "azul"
	_, err := uc.Save(ctx, testOwner, dto.UpdateSettingsRequest{Theme: &theme})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	threshold := int64(-1)
	_, err = uc.Save(ctx, testOwner, dto.UpdateSettingsRequest{LowStockThreshold: &threshold})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Save(ctx, "", dto.UpdateSettingsRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAddLocation_SinDuplicados(t *testing.T) {
	uc := NewSettingsUseCase(newMemSettingsRepo())
	ctx := context.Background()

	s, err := uc.AddLocation(ctx, testOwner, "Bodega")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodega", "Store"}, s.Locations)

	// Repetir la misma ubicación no la duplica.
	s, err = uc.AddLocation(ctx, testOwner, "  Bodega ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bodega", "Store"}, s.Locations)

	_, err = uc.AddLocation(ctx, testOwner, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddCategory(t *testing.T) {
	uc := NewSettingsUseCase(newMemSettingsRepo())

	s, err := uc.AddCategory(context.Background(), testOwner, "Ferretería")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ferretería"}, s.Categories)
}
