package entity_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

func kg(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLocation(max string) *entity.Location {
	return &entity.Location{ID: "loc-1", MaxCapacity: kg(max), CurrentWeight: decimal.Zero}
}

func TestAddWeight_CapacityErrorInformaDisponible(t *testing.T) {
	l := newLocation("1000")
	require.NoError(t, l.AddWeight(kg("800")))
	assert.True(t, l.Occupied)

	err := l.AddWeight(kg("250"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientCapacity))
	var ce *domain.CapacityError
	require.True(t, errors.As(err, &ce))
	assert.True(t, ce.Available.Equal(kg("200")))
	assert.Contains(t, err.Error(), "200.000", "el mensaje debe incluir la capacidad disponible")
	assert.True(t, l.CurrentWeight.Equal(kg("800")), "un fallo no modifica el peso")
}

func TestAddWeight_ExactoAlMaximo(t *testing.T) {
	l := newLocation("1000")
	require.NoError(t, l.AddWeight(kg("1000")))
	assert.Equal(t, entity.CapacityFull, l.CapacityStatus())
	assert.Equal(t, 100, l.OccupancyPercent())
	assert.False(t, l.CanAccommodate(kg("0.001")))
}

func TestRemoveWeight(t *testing.T) {
	l := newLocation("100")
	require.NoError(t, l.AddWeight(kg("40")))
	err := l.RemoveWeight(kg("40.001"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "no se puede retirar más que el peso actual")

	require.NoError(t, l.RemoveWeight(kg("40")))
	assert.True(t, l.CurrentWeight.IsZero())
	assert.False(t, l.Occupied, "occupied se recalcula en cada mutación")
}

func TestRelease(t *testing.T) {
	l := newLocation("100")
	require.NoError(t, l.AddWeight(kg("10")))
	l.Release()
	assert.True(t, l.CurrentWeight.IsZero())
	assert.False(t, l.Occupied)
}

func TestReleaseProduct(t *testing.T) {
	l := newLocation("100")
	require.NoError(t, l.AddWeight(kg("30")))
	require.NoError(t, l.ReleaseProduct(kg("10")))
	assert.True(t, l.CurrentWeight.Equal(kg("20")))
	require.NoError(t, l.ReleaseProduct(kg("25")))
	assert.True(t, l.CurrentWeight.IsZero())
}

func TestCapacityStatus_Umbrales(t *testing.T) {
	cases := []struct {
		current string
		want    entity.CapacityStatus
	}{
		{"0", entity.CapacityEmpty},
		{"9.99", entity.CapacityEmpty},
		{"10", entity.CapacityLow},
		{"499.99", entity.CapacityLow},
		{"500", entity.CapacityMedium},
		{"799.999", entity.CapacityMedium},
		{"800", entity.CapacityHigh},
		{"999.999", entity.CapacityHigh},
		{"1000", entity.CapacityFull},
	}
	for _, tc := range cases {
		l := newLocation("1000")
		l.CurrentWeight = kg(tc.current)
		assert.Equal(t, tc.want, l.CapacityStatus(), "peso %s", tc.current)
	}
}

func TestAvailableCapacity(t *testing.T) {
	l := newLocation("1000")
	require.NoError(t, l.AddWeight(kg("123.456")))
	assert.Equal(t, "876.544", l.AvailableCapacity().StringFixed(3))
	assert.Equal(t, 12, l.OccupancyPercent())
}

// Intercalados aleatorios de add/remove nunca superan la capacidad máxima.
func TestCapacidad_IntercaladosAleatorios(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for run := 0; run < 200; run++ {
		l := newLocation("1000")
		for step := 0; step < 100; step++ {
			w := decimal.NewFromInt(int64(rng.Intn(400_000))).Shift(-3) // 0..399.999 kg
			if rng.Intn(2) == 0 {
				before := l.CurrentWeight
				err := l.AddWeight(w)
				if err != nil {
					assert.True(t, l.CurrentWeight.Equal(before))
				}
			} else {
				_ = l.RemoveWeight(w)
			}
			require.True(t, l.CurrentWeight.LessThanOrEqual(l.MaxCapacity), "run %d paso %d: %s > max", run, step, l.CurrentWeight)
			require.False(t, l.CurrentWeight.IsNegative())
			require.Equal(t, l.CurrentWeight.IsPositive(), l.Occupied)
		}
	}
}

func TestChamberGrid(t *testing.T) {
	c := &entity.Chamber{Quadras: 2, Lados: 2, Filas: 3, Andares: 2}
	grid := c.Grid()
	assert.Len(t, grid, 24)
	assert.Equal(t, entity.Coordinates{Quadra: 1, Lado: 1, Fila: 1, Andar: 1}, grid[0])
	assert.Equal(t, entity.Coordinates{Quadra: 2, Lado: 2, Fila: 3, Andar: 2}, grid[23])
	assert.True(t, c.Contains(entity.Coordinates{Quadra: 2, Lado: 1, Fila: 3, Andar: 2}))
	assert.False(t, c.Contains(entity.Coordinates{Quadra: 3, Lado: 1, Fila: 1, Andar: 1}))
	assert.Equal(t, "Q02-L1-F03-A2", entity.Coordinates{Quadra: 2, Lado: 1, Fila: 3, Andar: 2}.Code())
}
