package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/usecase"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// CatalogHandler tipos de semilla y depositantes.
type CatalogHandler struct {
	uc  *usecase.CatalogUseCase
	log *logger.Logger
}

func NewCatalogHandler(uc *usecase.CatalogUseCase, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, log: log}
}

// CreateSeedType godoc
// @Summary      Crear tipo de semilla
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateSeedTypeRequest  true  "nombre y días máximos de almacenamiento"
// @Success      201   {object}  dto.SeedTypeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/seed-types [post]
func (h *CatalogHandler) CreateSeedType(c *fiber.Ctx) error {
	var in dto.CreateSeedTypeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateSeedType(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSeedTypes godoc
// @Summary      Listar tipos de semilla
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "límite (defecto 50)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {object}  dto.SeedTypeListResponse
// @Router       /api/seed-types [get]
func (h *CatalogHandler) ListSeedTypes(c *fiber.Ctx) error {
	out, err := h.uc.ListSeedTypes(c.Context(), page(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateClient godoc
// @Summary      Crear depositante
// @Tags         catalogs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateClientRequest  true  "nombre, documento y email"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateClient(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListClients godoc
// @Summary      Listar depositantes
// @Tags         catalogs
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "límite (defecto 50)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200     {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *CatalogHandler) ListClients(c *fiber.Ctx) error {
	out, err := h.uc.ListClients(c.Context(), page(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
