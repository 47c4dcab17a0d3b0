package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/usecase"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// LocationHandler cámaras, ubicaciones y capacidad.
type LocationHandler struct {
	uc  *usecase.LocationUseCase
	log *logger.Logger
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.LocationUseCase, log *logger.Logger) *LocationHandler {
	return &LocationHandler{uc: uc, log: log}
}

// CreateChamber godoc
// @Summary      Crear cámara
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateChamberRequest  true  "nombre y grilla"
// @Success      201   {object}  dto.ChamberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/chambers [post]
func (h *LocationHandler) CreateChamber(c *fiber.Ctx) error {
	var in dto.CreateChamberRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateChamber(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListChambers godoc
// @Summary      Listar cámaras
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "límite (defecto 50)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {object}  dto.ChamberListResponse
// @Router       /api/chambers [get]
func (h *LocationHandler) ListChambers(c *fiber.Ctx) error {
	out, err := h.uc.ListChambers(c.Context(), page(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la cámara"
// @Param        body  body      dto.CreateLocationRequest  true  "coordenadas, código y capacidad"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/chambers/{id}/locations [post]
func (h *LocationHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateLocation(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GenerateLocations godoc
// @Summary      Generar ubicaciones de toda la grilla
// @Description  Omite los códigos existentes y devuelve creadas/omitidas.
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true   "ID de la cámara"
// @Param        body  body      dto.GenerateLocationsRequest  false  "capacidad por celda"
// @Success      201   {object}  dto.GenerateLocationsResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/chambers/{id}/locations/generate [post]
func (h *LocationHandler) GenerateLocations(c *fiber.Ctx) error {
	var in dto.GenerateLocationsRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.GenerateLocations(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByChamber godoc
// @Summary      Ubicaciones de una cámara
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id      path      string  true   "ID de la cámara"
// @Param        limit   query     int     false  "límite (defecto 50)"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.LocationListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/chambers/{id}/locations [get]
func (h *LocationHandler) ListByChamber(c *fiber.Ctx) error {
	out, err := h.uc.ListByChamber(c.Context(), c.Params("id"), page(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetCapacity godoc
// @Summary      Capacidad de una ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetCapacity(c *fiber.Ctx) error {
	out, err := h.uc.GetCapacity(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
