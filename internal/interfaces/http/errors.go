package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/domain"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// writeError traduce los errores de dominio a status HTTP y ErrorResponse.
// Solo los 500 se registran: el resto ya lo registra el caso de uso.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := errorResponse(err)
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		body.Message = "error interno"
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	body := dto.ErrorResponse{Message: err.Error()}

	var be *domain.BatchError
	if errors.As(err, &be) {
		idx := be.Index
		body.Code = "TRANSACTION_ABORTED"
		body.Index = &idx
		body.Field = be.Field
		return fiber.StatusBadRequest, body
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Code = "VALIDATION"
		body.Field = ve.Field
		return fiber.StatusBadRequest, body
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		body.Code = "VALIDATION"
		return fiber.StatusBadRequest, body
	case errors.Is(err, domain.ErrNotFound):
		body.Code = "NOT_FOUND"
		return fiber.StatusNotFound, body
	case errors.Is(err, domain.ErrInvalidTransition):
		body.Code = "INVALID_TRANSITION"
		return fiber.StatusConflict, body
	case errors.Is(err, domain.ErrInsufficientCapacity):
		body.Code = "INSUFFICIENT_CAPACITY"
		return fiber.StatusUnprocessableEntity, body
	case errors.Is(err, domain.ErrDuplicate):
		body.Code = "DUPLICATE"
		return fiber.StatusConflict, body
	case errors.Is(err, domain.ErrConflict):
		body.Code = "CONFLICT"
		return fiber.StatusConflict, body
	case errors.Is(err, domain.ErrForbidden):
		body.Code = "FORBIDDEN"
		return fiber.StatusForbidden, body
	case errors.Is(err, domain.ErrUnauthorized):
		body.Code = "UNAUTHORIZED"
		return fiber.StatusUnauthorized, body
	default:
		body.Code = "INTERNAL"
		return fiber.StatusInternalServerError, body
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// page lee limit/offset del query string con los valores por defecto de dto.PageRequest.
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	p.DefaultPage()
	return p
}

// parseOptionalBody acepta cuerpo vacío en las operaciones sin datos obligatorios.
func parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}
