package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/infrastructure/memory"
)

func newLocationUC() *LocationUseCase {
	return NewLocationUseCase(memory.NewStore(), nil, decimal.NewFromInt(1000))
}

func chamberReq() dto.CreateChamberRequest {
	return dto.CreateChamberRequest{Name: "Câmara 1", Quadras: 2, Lados: 2, Filas: 1, Andares: 2}
}

func TestCreateChamber(t *testing.T) {
	uc := newLocationUC()
	ctx := context.Background()

	c, err := uc.CreateChamber(ctx, chamberReq())
	require.NoError(t, err)
	assert.True(t, c.DefaultCapacity.Equal(decimal.NewFromInt(1000)), "sin default_capacity usa el configurado")

	bad := chamberReq()
	bad.Name = "Otra"
	bad.Filas = 0
	_, err = uc.CreateChamber(ctx, bad)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "filas", ve.Field)

	_, err = uc.CreateChamber(ctx, chamberReq())
	assert.ErrorIs(t, err, domain.ErrDuplicate, "nombre repetido")
}

func TestGenerateLocations_OmiteExistentes(t *testing.T) {
	uc := newLocationUC()
	ctx := context.Background()
	c, err := uc.CreateChamber(ctx, chamberReq())
	require.NoError(t, err)

	_, err = uc.CreateLocation(ctx, c.ID, dto.CreateLocationRequest{Quadra: 1, Lado: 1, Fila: 1, Andar: 1})
	require.NoError(t, err)

	res, err := uc.GenerateLocations(ctx, c.ID, dto.GenerateLocationsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 7, res.Created)
	assert.Equal(t, 1, res.Skipped)

	again, err := uc.GenerateLocations(ctx, c.ID, dto.GenerateLocationsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 8, again.Skipped)

	list, err := uc.ListByChamber(ctx, c.ID, dto.PageRequest{Limit: 3})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "Q01-L1-F01-A1", list.Items[0].Code)
	assert.Equal(t, "empty", list.Items[0].CapacityStatus)
}

func TestCreateLocation_CodigoYGrilla(t *testing.T) {
	uc := newLocationUC()
	ctx := context.Background()
	c, err := uc.CreateChamber(ctx, chamberReq())
	require.NoError(t, err)

	cap500 := decimal.NewFromInt(500)
	loc, err := uc.CreateLocation(ctx, c.ID, dto.CreateLocationRequest{Code: " estante  norte ", Quadra: 2, Lado: 1, Fila: 1, Andar: 1, MaxCapacity: &cap500})
	require.NoError(t, err)
	assert.Equal(t, "ESTANTE-NORTE", loc.Code)
	assert.True(t, loc.AvailableCapacity.Equal(cap500))

	_, err = uc.CreateLocation(ctx, c.ID, dto.CreateLocationRequest{Quadra: 3, Lado: 1, Fila: 1, Andar: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "fuera de la grilla")

	_, err = uc.CreateLocation(ctx, "no-existe", dto.CreateLocationRequest{Quadra: 1, Lado: 1, Fila: 1, Andar: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.GetCapacity(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OccupancyPercent)
	assert.False(t, got.Occupied)
}
