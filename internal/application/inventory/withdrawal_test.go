package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

func TestSolicitudTotal_CrearYConfirmar(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	p := e.register(t, locA, 10)

	w, err := e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{
		ProductID:   p.ID,
		RequestedBy: admin,
		Type:        entity.WithdrawalTotal,
		Reason:      "devolución al cliente",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalPending, w.Status)
	assert.Nil(t, w.QuantityRequested)
	assert.Equal(t, 10, w.Snapshot.Quantity)
	assert.Equal(t, e.location(t, locA).Code, w.Snapshot.LocationCode)

	got, err := e.lifecycle.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusPendingWithdrawal, got.Status)

	_, err = e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalTotal})
	assert.ErrorIs(t, err, domain.ErrConflict, "el producto ya no está STORED")

	pending, err := e.withdrawals.ListPending(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	w, err = e.withdrawals.Confirm(ctx, w.ID, operador, "retirado en portón 2")
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalConfirmed, w.Status)
	require.NotNil(t, w.ResolvedBy)
	assert.Equal(t, operador, *w.ResolvedBy)

	got, err = e.lifecycle.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusWithdrawn, got.Status)
	assert.True(t, e.location(t, locA).CurrentWeight.IsZero())

	_, err = e.withdrawals.Confirm(ctx, w.ID, operador, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "ya resuelta")

	pending, err = e.withdrawals.ListPending(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSolicitudParcial(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	p := e.register(t, locA, 10)

	_, err := e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalPartial})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "quantity", ve.Field)

	qty := 3
	w, err := e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalPartial, Quantity: &qty})
	require.NoError(t, err)

	_, err = e.withdrawals.Confirm(ctx, w.ID, operador, "")
	require.NoError(t, err)

	got, err := e.lifecycle.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusStored, got.Status)
	assert.Equal(t, 7, got.Quantity)
	assert.True(t, e.location(t, locA).CurrentWeight.Equal(kg("17.5")))
}

func TestSolicitud_Cancelar(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	p := e.register(t, locA, 2)

	w, err := e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalTotal})
	require.NoError(t, err)

	w, err = e.withdrawals.Cancel(ctx, w.ID, admin, "cliente desistió")
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalCancelled, w.Status)
	assert.Equal(t, "cliente desistió", w.ResolutionNotes)

	got, err := e.lifecycle.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusStored, got.Status)
	assert.True(t, e.location(t, locA).CurrentWeight.Equal(kg("5")))
}

func TestCancelarRetiroDelProducto_CierraSolicitud(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	p := e.register(t, locA, 2)

	w, err := e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalTotal})
	require.NoError(t, err)

	_, err = e.lifecycle.CancelWithdrawal(ctx, req(p.ID))
	require.NoError(t, err)

	w, err = e.withdrawals.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalCancelled, w.Status)
}

func TestRemove_ConSolicitudPendiente(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	p := e.register(t, locA, 2)

	w, err := e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalTotal})
	require.NoError(t, err)

	_, err = e.lifecycle.Remove(ctx, req(p.ID))
	require.NoError(t, err)

	w, err = e.withdrawals.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalCancelled, w.Status)
	assert.True(t, e.location(t, locA).CurrentWeight.IsZero())
}

func TestSolicitud_NoEncontrada(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	_, err := e.withdrawals.Confirm(ctx, "no-existe", operador, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.withdrawals.GetByID(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p := e.register(t, "", 1)
	_, err = e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalTotal})
	assert.ErrorIs(t, err, domain.ErrConflict, "sin ubicar no se puede solicitar retiro")
}

func TestConfirmarRetiroDelProducto_CantidadDistintaALaSolicitada(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	p := e.register(t, locA, 10)

	four := 4
	w, err := e.withdrawals.Create(ctx, inventory.CreateWithdrawalInput{
		ProductID: p.ID, RequestedBy: admin, Type: entity.WithdrawalPartial, Quantity: &four,
	})
	require.NoError(t, err)

	two := 2
	_, err = e.lifecycle.ConfirmWithdrawal(ctx, req(p.ID), &two)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = e.lifecycle.ConfirmWithdrawal(ctx, req(p.ID), nil)
	assert.ErrorIs(t, err, domain.ErrConflict, "total contra una solicitud parcial")

	w, err = e.withdrawals.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalPending, w.Status)
	got, err := e.lifecycle.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)
	assert.Equal(t, entity.ProductStatusPendingWithdrawal, got.Status)

	got, err = e.lifecycle.ConfirmWithdrawal(ctx, req(p.ID), &four)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)
	w, err = e.withdrawals.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalConfirmed, w.Status)
}
