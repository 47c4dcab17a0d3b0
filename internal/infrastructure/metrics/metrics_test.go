package metrics

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
)

func TestEngine_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := NewEngine(reg, "test")

	e.Transition(entity.ProductStatusPendingLocation, entity.ProductStatusStored)
	e.Transition(entity.ProductStatusPendingLocation, entity.ProductStatusStored)
	e.MovementRecorded(entity.MovementEntry, true)
	e.Rejected("locate", &domain.CapacityError{LocationID: "L1"})

	assert.Equal(t, 2.0, testutil.ToFloat64(e.transitions.WithLabelValues("PENDING_LOCATION", "STORED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.movements.WithLabelValues("entry", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.rejections.WithLabelValues("locate", "capacity")))
}

func TestErrorKind(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"validación":  {domain.NewValidationError("quantity", "x"), "validation"},
		"transición":  {&domain.TransitionError{From: "WITHDRAWN", Event: "move"}, "invalid_transition"},
		"lote":        {&domain.BatchError{Index: 2, Err: domain.NewValidationError("name", "x")}, "transaction_aborted"},
		"conflicto":   {domain.Conflictf("ocupada"), "conflict"},
		"duplicado":   {fmt.Errorf("%w: x", domain.ErrDuplicate), "duplicate"},
		"no existe":   {domain.NotFoundf("producto"), "not_found"},
		"desconocido": {errors.New("db caída"), "internal"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}

func TestHTTPMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHTTP(reg, "test")
	app := fiber.New()
	app.Use(h.Middleware())
	app.Get("/products/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	resp, err := app.Test(httptest.NewRequest("GET", "/products/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.requests.WithLabelValues("GET", "/products/:id", "204")))
}
