package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// MovementHandler ledger de movimientos (protegido).
type MovementHandler struct {
	uc  *inventory.MovementUseCase
	log *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.MovementUseCase, log *logger.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, log: log}
}

// Record godoc
// @Summary      Registrar movimiento manual
// @Description  Solo auditoría: no cambia producto ni capacidad. Rechaza duplicados dentro de la ventana configurada.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RecordMovementRequest  true  "movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "DUPLICATE"
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.uc.RecordManual(c.Context(), inventory.RecordInput{
		ProductID:      in.ProductID,
		Type:           entity.MovementType(in.Type),
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Weight:         in.Weight,
		ActorID:        GetUserID(c),
		Reason:         in.Reason,
		Status:         entity.MovementStatus(in.Status),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(m))
}

// List godoc
// @Summary      Listar movimientos por rango de fechas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        from    query     string  false  "desde (RFC3339)"
// @Param        to      query     string  false  "hasta (RFC3339)"
// @Param        limit   query     int     false  "límite (defecto 50)"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.MovementListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return writeError(c, h.log, err)
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return writeError(c, h.log, err)
	}
	pg := page(c)
	list, err := h.uc.ListByDateRange(c.Context(), from, to, pg.Limit, pg.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementListResponse(list, pg))
}

// ListByUser godoc
// @Summary      Movimientos registrados por un usuario
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path      string  true   "ID del usuario"
// @Param        limit   query     int     false  "límite (defecto 50)"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/movements/user/{id} [get]
func (h *MovementHandler) ListByUser(c *fiber.Ctx) error {
	pg := page(c)
	list, err := h.uc.ListByUser(c.Context(), c.Params("id"), pg.Limit, pg.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementListResponse(list, pg))
}

// ListByLocation godoc
// @Summary      Movimientos con origen o destino en una ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id      path      string  true   "ID de la ubicación"
// @Param        limit   query     int     false  "límite (defecto 50)"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/locations/{id}/movements [get]
func (h *MovementHandler) ListByLocation(c *fiber.Ctx) error {
	pg := page(c)
	list, err := h.uc.ListByLocation(c.Context(), c.Params("id"), pg.Limit, pg.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementListResponse(list, pg))
}

// Verify godoc
// @Summary      Verificar movimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true   "ID del movimiento"
// @Param        body  body      dto.VerifyMovementRequest  false  "notas"
// @Success      200   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/verify [post]
func (h *MovementHandler) Verify(c *fiber.Ctx) error {
	var in dto.VerifyMovementRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	m, err := h.uc.Verify(c.Context(), c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// Cancel godoc
// @Summary      Cancelar movimiento
// @Description  Solo metadatos: no compensa capacidad ni cantidad.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true   "ID del movimiento"
// @Param        body  body      dto.CancelMovementRequest  false  "motivo"
// @Success      200   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/cancel [post]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelMovementRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	m, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c), in.Reason)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementResponse(m))
}

func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, domain.NewValidationError(key, "formato de fecha inválido, se espera RFC3339")
	}
	return &t, nil
}
