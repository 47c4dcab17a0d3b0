package entity_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

func intp(i int) *int { return &i }

func TestNewWithdrawalRequest_RequiereStored(t *testing.T) {
	p := newProduct(t, 10, "5")
	require.NoError(t, p.Place(nil, now))
	_, err := entity.NewWithdrawalRequest("w-1", p, "", "admin", entity.WithdrawalTotal, nil, "", now)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestNewWithdrawalRequest_Parcial(t *testing.T) {
	p := storedProduct(t, 10, "5")
	_, err := entity.NewWithdrawalRequest("w-1", p, "Q01", "admin", entity.WithdrawalPartial, nil, "", now)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "PARCIAL sin cantidad")
	_, err = entity.NewWithdrawalRequest("w-1", p, "Q01", "admin", entity.WithdrawalPartial, intp(10), "", now)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "PARCIAL con cantidad igual a la del producto")

	w, err := entity.NewWithdrawalRequest("w-1", p, "Q01", "admin", entity.WithdrawalPartial, intp(4), "muestra", now)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalPending, w.Status)
	assert.Equal(t, 10, w.Snapshot.Quantity)
	assert.True(t, w.Snapshot.TotalWeight.Equal(p.TotalWeight))
	assert.Equal(t, "Q01", w.Snapshot.LocationCode)
	assert.Equal(t, 4, *w.QuantityToWithdraw())
}

func TestWithdrawalRequest_EstadosTerminales(t *testing.T) {
	p := storedProduct(t, 10, "5")
	w, err := entity.NewWithdrawalRequest("w-1", p, "", "admin", entity.WithdrawalTotal, intp(3), "", now)
	require.NoError(t, err)
	assert.Nil(t, w.QuantityToWithdraw(), "TOTAL ignora la cantidad")

	require.NoError(t, w.Confirm("op", "entregado", now))
	assert.Equal(t, entity.WithdrawalConfirmed, w.Status)
	assert.True(t, errors.Is(w.Cancel("op", "", now), domain.ErrInvalidTransition))
	assert.True(t, errors.Is(w.Confirm("op", "", now), domain.ErrInvalidTransition))
}
