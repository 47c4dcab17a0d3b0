package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/internal/domain/repository"
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func product(id, loc string, status entity.ProductStatus) *entity.Product {
	p := &entity.Product{ID: id, Name: "Milho", LotCode: "L-1", SeedTypeID: "st", Quantity: 10,
		WeightPerUnit: decimal.NewFromInt(2), TotalWeight: decimal.NewFromInt(20), Status: status, CreatedAt: t0}
	if loc != "" {
		p.LocationID = &loc
	}
	return p
}

func TestRun_RollbackDescartaCambios(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r inventory.Repos) error {
		require.NoError(t, r.Products.Create(ctx, product("p1", "", entity.ProductStatusPendingLocation)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_ = s.Run(ctx, func(r inventory.Repos) error {
		p, err := r.Products.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Nil(t, p, "la transacción fallida no debe publicar nada")
		return nil
	})
}

func TestProductUpdate_VersionYOcupacion(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Run(ctx, func(r inventory.Repos) error {
		if err := r.Products.Create(ctx, product("p1", "L1", entity.ProductStatusStored)); err != nil {
			return err
		}
		return r.Products.Create(ctx, product("p2", "", entity.ProductStatusPendingLocation))
	}))

	err := s.Run(ctx, func(r inventory.Repos) error {
		p := product("p2", "L1", entity.ProductStatusStored)
		p.Version = 1
		return r.Products.Update(ctx, p, 0)
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "la ubicación ya tiene un producto activo")

	err = s.Run(ctx, func(r inventory.Repos) error {
		p := product("p2", "", entity.ProductStatusPendingLocation)
		return r.Products.Update(ctx, p, 7)
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "versión obsoleta")

	require.NoError(t, s.Run(ctx, func(r inventory.Repos) error {
		active, err := r.Products.FindActiveByLocation(ctx, "L1")
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, "p1", active.ID)
		return nil
	}))
}

func TestLocations_CodigoUnicoYCapacidad(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	loc := &entity.Location{ID: "L1", ChamberID: "c1", Code: "Q01-L1-F01-A1", MaxCapacity: decimal.NewFromInt(100)}

	err := s.Run(ctx, func(r inventory.Repos) error {
		require.NoError(t, r.Locations.Create(ctx, loc))
		dup := *loc
		dup.ID = "L2"
		return r.Locations.Create(ctx, &dup)
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.NoError(t, s.Run(ctx, func(r inventory.Repos) error { return r.Locations.Create(ctx, loc) }))
	err = s.Run(ctx, func(r inventory.Repos) error {
		over := loc.Clone()
		over.CurrentWeight = decimal.NewFromInt(101)
		return r.Locations.UpdateWeight(ctx, over)
	})
	var ce *domain.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Available.Equal(decimal.NewFromInt(100)))
	assert.True(t, ce.Requested.Equal(decimal.NewFromInt(101)))

	require.NoError(t, s.Run(ctx, func(r inventory.Repos) error {
		half := loc.Clone()
		half.CurrentWeight = decimal.NewFromInt(60)
		return r.Locations.UpdateWeight(ctx, half)
	}))
	err = s.Run(ctx, func(r inventory.Repos) error {
		over := loc.Clone()
		over.CurrentWeight = decimal.NewFromInt(130)
		return r.Locations.UpdateWeight(ctx, over)
	})
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Requested.Equal(decimal.NewFromInt(70)), "solicitado = incremento sobre el peso guardado")
	assert.True(t, ce.Available.Equal(decimal.NewFromInt(40)))
}

func TestMovements_ListOrdenYFiltros(t *testing.T) {
	s := NewStore()
	s.AddUser(&entity.User{ID: "u1", Name: "Ana"})
	ctx := context.Background()
	to := "L1"
	require.NoError(t, s.Run(ctx, func(r inventory.Repos) error {
		require.NoError(t, r.Locations.Create(ctx, &entity.Location{ID: "L1", ChamberID: "c", Code: "A-1", MaxCapacity: decimal.NewFromInt(10)}))
		require.NoError(t, r.Products.Create(ctx, product("p1", "", entity.ProductStatusPendingLocation)))
		for i, ts := range []time.Time{t0, t0.Add(time.Hour), t0.Add(time.Hour)} {
			m := &entity.Movement{ID: string(rune('a' + i)), ProductID: "p1", Type: entity.MovementEntry, ToLocationID: &to,
				UserID: "u1", Status: entity.MovementCompleted, Timestamp: ts}
			require.NoError(t, r.Movements.Create(ctx, m))
		}
		return nil
	}))

	_ = s.Run(ctx, func(r inventory.Repos) error {
		list, err := r.Movements.List(ctx, repository.MovementFilter{LocationID: "L1", Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{"c", "b", "a"}, []string{list[0].ID, list[1].ID, list[2].ID})
		assert.Equal(t, "Milho", list[0].ProductName)
		assert.Equal(t, "Ana", list[0].UserName)
		assert.Equal(t, "A-1", list[0].ToLocationCode)

		from := t0.Add(30 * time.Minute)
		list, err = r.Movements.List(ctx, repository.MovementFilter{From: &from, Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "b", list[0].ID)
		return nil
	})
}

func TestPage(t *testing.T) {
	in := []int{1, 2, 3, 4}
	assert.Equal(t, []int{2, 3}, page(in, 2, 1))
	assert.Equal(t, []int{1, 2, 3, 4}, page(in, 0, 0))
	assert.Nil(t, page(in, 2, 9))
}
