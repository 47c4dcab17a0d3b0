package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// WithdrawalHandler solicitudes de retiro (admin solicita, operador confirma).
type WithdrawalHandler struct {
	uc  *inventory.WithdrawalUseCase
	log *logger.Logger
}

// NewWithdrawalHandler construye el handler.
func NewWithdrawalHandler(uc *inventory.WithdrawalUseCase, log *logger.Logger) *WithdrawalHandler {
	return &WithdrawalHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear solicitud de retiro
// @Tags         withdrawals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateWithdrawalRequest  true  "producto, tipo TOTAL|PARCIAL y cantidad"
// @Success      201   {object}  dto.WithdrawalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/withdrawal-requests [post]
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWithdrawalRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.Create(c.Context(), inventory.CreateWithdrawalInput{
		ProductID:   in.ProductID,
		RequestedBy: GetUserID(c),
		Type:        entity.WithdrawalType(in.Type),
		Quantity:    in.Quantity,
		Reason:      in.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWithdrawalResponse(w))
}

// ListPending godoc
// @Summary      Solicitudes pendientes
// @Tags         withdrawals
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "límite (defecto 50)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {object}  dto.WithdrawalListResponse
// @Router       /api/withdrawal-requests/pending [get]
func (h *WithdrawalHandler) ListPending(c *fiber.Ctx) error {
	pg := page(c)
	list, err := h.uc.ListPending(c.Context(), pg.Limit, pg.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	items := make([]dto.WithdrawalResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *dto.ToWithdrawalResponse(w))
	}
	return c.JSON(dto.WithdrawalListResponse{Items: items, Page: dto.PageResponse{Limit: pg.Limit, Offset: pg.Offset}})
}

// GetByID godoc
// @Summary      Obtener solicitud de retiro
// @Tags         withdrawals
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la solicitud"
// @Success      200  {object}  dto.WithdrawalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/withdrawal-requests/{id} [get]
func (h *WithdrawalHandler) GetByID(c *fiber.Ctx) error {
	w, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToWithdrawalResponse(w))
}

// Confirm godoc
// @Summary      Confirmar solicitud de retiro
// @Tags         withdrawals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true   "ID de la solicitud"
// @Param        body  body      dto.ResolveWithdrawalRequest  false  "notas"
// @Success      200   {object}  dto.WithdrawalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/withdrawal-requests/{id}/confirm [post]
func (h *WithdrawalHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ResolveWithdrawalRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.Confirm(c.Context(), c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToWithdrawalResponse(w))
}

// Cancel godoc
// @Summary      Cancelar solicitud de retiro
// @Tags         withdrawals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true   "ID de la solicitud"
// @Param        body  body      dto.ResolveWithdrawalRequest  false  "motivo"
// @Success      200   {object}  dto.WithdrawalResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/withdrawal-requests/{id}/cancel [post]
func (h *WithdrawalHandler) Cancel(c *fiber.Ctx) error {
	var in dto.ResolveWithdrawalRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	w, err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c), in.Notes)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToWithdrawalResponse(w))
}
