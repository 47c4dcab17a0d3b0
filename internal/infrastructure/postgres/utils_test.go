package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

func TestViolaciones(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: constraintActiveLocation})
	check := &pgconn.PgError{Code: "23514", ConstraintName: constraintLocationCapacity}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isCheckViolation(unique))
	assert.Equal(t, constraintActiveLocation, constraintName(unique))

	assert.True(t, isCheckViolation(check))
	assert.False(t, isUniqueViolation(check))

	assert.False(t, isUniqueViolation(errors.New("timeout")))
	assert.Empty(t, constraintName(errors.New("timeout")))
}

func TestProductWriteError(t *testing.T) {
	loc := "loc-1"
	p := &entity.Product{ID: "p-1", LocationID: &loc}

	err := productWriteError("update product", p, &pgconn.PgError{Code: "23505", ConstraintName: constraintActiveLocation})
	assert.ErrorIs(t, err, domain.ErrConflict, "ubicación ocupada")

	err = productWriteError("insert product", p, &pgconn.PgError{Code: "23505", ConstraintName: "products_pkey"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	boom := errors.New("conexión perdida")
	err = productWriteError("insert product", p, boom)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "insert product")
}

func TestCapacityExceeded_HolguraReal(t *testing.T) {
	err := capacityExceeded("loc-1", decimal.RequireFromString("130"), decimal.RequireFromString("60"), decimal.RequireFromString("100"))
	var ce *domain.CapacityError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, domain.ErrInsufficientCapacity)
	assert.True(t, ce.Requested.Equal(decimal.NewFromInt(70)))
	assert.True(t, ce.Available.Equal(decimal.NewFromInt(40)))
	assert.Contains(t, err.Error(), "disponible 40.000 kg")

	err = capacityExceeded("loc-1", decimal.NewFromInt(5), decimal.NewFromInt(120), decimal.NewFromInt(100))
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Available.IsZero(), "nunca holgura negativa")
}

func TestMigracionesEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 4)
	for _, f := range files {
		b, err := migrationsFS.ReadFile(f)
		require.NoError(t, err)
		sql := string(b)
		assert.True(t, strings.HasPrefix(sql, "-- +goose Up"), f)
		assert.Contains(t, sql, "-- +goose Down", f)
	}

	all := ""
	for _, f := range files {
		b, _ := migrationsFS.ReadFile(f)
		all += string(b)
	}
	for _, c := range []string{constraintActiveLocation, constraintPendingWithdrawal, constraintLocationCapacity} {
		assert.Contains(t, all, c, "las constraints traducidas deben existir en el esquema")
	}
}
