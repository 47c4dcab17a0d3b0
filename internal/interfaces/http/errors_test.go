package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", domain.NewValidationError("quantity", "debe ser mayor a 0"), fiber.StatusBadRequest, "VALIDATION"},
		{"entrada inválida", fmt.Errorf("%w: x", domain.ErrInvalidInput), fiber.StatusBadRequest, "VALIDATION"},
		{"no encontrado", domain.NotFoundf("producto p1"), fiber.StatusNotFound, "NOT_FOUND"},
		{"transición", &domain.TransitionError{From: "WITHDRAWN", Event: "move"}, fiber.StatusConflict, "INVALID_TRANSITION"},
		{"capacidad", &domain.CapacityError{LocationID: "l1", Requested: decimal.NewFromInt(5), Available: decimal.NewFromInt(1)}, fiber.StatusUnprocessableEntity, "INSUFFICIENT_CAPACITY"},
		{"duplicado", fmt.Errorf("%w: mov", domain.ErrDuplicate), fiber.StatusConflict, "DUPLICATE"},
		{"conflicto", domain.Conflictf("versión obsoleta"), fiber.StatusConflict, "CONFLICT"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
		{"no autorizado", domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
		{"interno", errors.New("pool cerrado"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := errorResponse(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestErrorResponse_LoteConIndiceYCampo(t *testing.T) {
	err := &domain.BatchError{Index: 3, Field: "weight_per_unit", Err: domain.NewValidationError("weight_per_unit", "debe ser mayor a 0")}
	status, body := errorResponse(err)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "TRANSACTION_ABORTED", body.Code)
	require.NotNil(t, body.Index)
	assert.Equal(t, 3, *body.Index)
	assert.Equal(t, "weight_per_unit", body.Field)
}

func TestErrorResponse_CampoDeValidacion(t *testing.T) {
	_, body := errorResponse(domain.NewValidationError("location_id", "es requerido"))
	assert.Equal(t, "location_id", body.Field)
	assert.Nil(t, body.Index)
}
