package postgres

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/pkg/config"
)

// Requiere TEST_DATABASE_URL apuntando a una base descartable: la prueba ejecuta reset + up.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, Migrate(ctx, pool, "reset"))
	require.NoError(t, Migrate(ctx, pool, "up"))
	return pool
}

func TestPostgres_LocateConcurrenteYCapacidad(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	tx := NewTxRunner(pool)

	seedID, clientID, chamberID := uuid.NewString(), uuid.NewString(), uuid.NewString()
	locID := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, tx.Run(ctx, func(r inventory.Repos) error {
		if err := r.SeedTypes.Create(ctx, &entity.SeedType{ID: seedID, Name: "Milho", MaxStorageDays: 365, CreatedAt: now}); err != nil {
			return err
		}
		if err := r.Clients.Create(ctx, &entity.Client{ID: clientID, Name: "Coop", CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		if err := r.Chambers.Create(ctx, &entity.Chamber{ID: chamberID, Name: "C1", Quadras: 1, Lados: 1, Filas: 1, Andares: 1,
			DefaultCapacity: decimal.NewFromInt(100), CreatedAt: now, UpdatedAt: now}); err != nil {
			return err
		}
		co := entity.Coordinates{Quadra: 1, Lado: 1, Fila: 1, Andar: 1}
		return r.Locations.Create(ctx, &entity.Location{ID: locID, ChamberID: chamberID, Code: co.Code(), Coordinates: co,
			MaxCapacity: decimal.NewFromInt(100), CreatedAt: now, UpdatedAt: now})
	}))

	actor := uuid.NewString()
	lc := inventory.NewLifecycleUseCase(inventory.Deps{Tx: tx})
	input := inventory.ProductInput{Name: "Milho", LotCode: "L1", SeedTypeID: seedID, ClientID: clientID,
		Quantity: 4, WeightPerUnit: decimal.RequireFromString("2.5")}

	const n = 5
	ids := make([]string, n)
	for i := range ids {
		p, err := lc.Register(ctx, inventory.RegisterInput{ProductInput: input, ActorID: actor})
		require.NoError(t, err)
		ids[i] = p.ID
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = lc.Locate(ctx, inventory.TransitionRequest{ProductID: ids[i], ActorID: actor}, locID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, 1, ok, "una sola ubicación, un solo ganador")

	require.NoError(t, tx.Run(ctx, func(r inventory.Repos) error {
		loc, err := r.Locations.GetByID(ctx, locID)
		require.NoError(t, err)
		assert.True(t, loc.CurrentWeight.Equal(decimal.NewFromInt(10)))
		assert.True(t, loc.Occupied)
		return nil
	}))

	big := input
	big.Quantity = 100
	_, err := lc.Register(ctx, inventory.RegisterInput{ProductInput: big, LocationID: locID, ActorID: actor})
	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
}
