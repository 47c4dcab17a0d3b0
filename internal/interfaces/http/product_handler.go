package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bancosemillas-api/internal/application/dto"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// ProductHandler ciclo de vida de productos y alta por lote (protegido).
type ProductHandler struct {
	lifecycle *inventory.LifecycleUseCase
	batch     *inventory.BatchUseCase
	movements *inventory.MovementUseCase
	log       *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(lc *inventory.LifecycleUseCase, batch *inventory.BatchUseCase, movements *inventory.MovementUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{lifecycle: lc, batch: batch, movements: movements, log: log}
}

func toProductInput(in dto.ProductInputRequest) inventory.ProductInput {
	return inventory.ProductInput{
		Name:           in.Name,
		LotCode:        in.LotCode,
		SeedTypeID:     in.SeedTypeID,
		ClientID:       in.ClientID,
		Quantity:       in.Quantity,
		WeightPerUnit:  in.WeightPerUnit,
		EntryDate:      in.EntryDate,
		ExpirationDate: in.ExpirationDate,
	}
}

// Register godoc
// @Summary      Registrar producto
// @Description  Con location_id queda STORED (entrada automática); sin ella, PENDING_LOCATION.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterProductRequest  true  "datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	req := inventory.RegisterInput{
		ProductInput: toProductInput(in.ProductInputRequest),
		ActorID:      GetUserID(c),
		Reason:       in.Reason,
	}
	if in.LocationID != nil {
		req.LocationID = *in.LocationID
	}
	p, err := h.lifecycle.Register(c.Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(p))
}

// CreateBatch godoc
// @Summary      Registrar lote de productos
// @Description  Todos los productos quedan PENDING_LOCATION o no se crea ninguno.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.BatchRequest  true  "cliente y productos (máx. 50)"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse  "index y field del producto que abortó el lote"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/batch [post]
func (h *ProductHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.BatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	items := make([]inventory.ProductInput, 0, len(in.Products))
	for _, p := range in.Products {
		items = append(items, toProductInput(p))
	}
	res, err := h.batch.CreateBatch(c.Context(), inventory.BatchInput{
		ClientID:  in.ClientID,
		Products:  items,
		ActorID:   GetUserID(c),
		BatchName: in.BatchName,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.BatchResponse{BatchID: res.BatchID, BatchName: res.BatchName, Count: res.Count,
		Products: make([]dto.ProductResponse, 0, len(res.Products))}
	for _, p := range res.Products {
		out.Products = append(out.Products, *dto.ToProductResponse(p))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListBatch godoc
// @Summary      Productos de un lote
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        batchId  path      string  true  "ID del lote"
// @Success      200      {object}  dto.BatchResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/products/batch/{batchId} [get]
func (h *ProductHandler) ListBatch(c *fiber.Ctx) error {
	list, err := h.batch.ListBatch(c.Context(), c.Params("batchId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := dto.BatchResponse{BatchID: c.Params("batchId"), Count: len(list),
		Products: make([]dto.ProductResponse, 0, len(list))}
	if name := list[0].BatchName; name != nil {
		out.BatchName = *name
	}
	for _, p := range list {
		out.Products = append(out.Products, *dto.ToProductResponse(p))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.lifecycle.GetProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

func (h *ProductHandler) transitionRequest(c *fiber.Ctx, in dto.TransitionRequest) inventory.TransitionRequest {
	return inventory.TransitionRequest{
		ProductID:       c.Params("id"),
		ActorID:         GetUserID(c),
		ExpectedVersion: in.ExpectedVersion,
		Reason:          in.Reason,
	}
}

func (h *ProductHandler) respond(c *fiber.Ctx, p *entity.Product, err error) error {
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToProductResponse(p))
}

// Locate godoc
// @Summary      Ubicar producto pendiente
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID del producto"
// @Param        body  body      dto.LocateRequest  true  "ubicación destino"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/locate [post]
func (h *ProductHandler) Locate(c *fiber.Ctx) error {
	var in dto.LocateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.lifecycle.Locate(c.Context(), h.transitionRequest(c, in.TransitionRequest), in.LocationID)
	return h.respond(c, p, err)
}

// Move godoc
// @Summary      Trasladar producto almacenado
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "ID del producto"
// @Param        body  body      dto.LocateRequest  true  "nueva ubicación"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/move [post]
func (h *ProductHandler) Move(c *fiber.Ctx) error {
	var in dto.LocateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.lifecycle.MoveTo(c.Context(), h.transitionRequest(c, in.TransitionRequest), in.LocationID)
	return h.respond(c, p, err)
}

// RequestWithdrawal godoc
// @Summary      Marcar producto para retiro
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true   "ID del producto"
// @Param        body  body      dto.TransitionRequest  false  "versión esperada y motivo"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/withdrawal/request [post]
func (h *ProductHandler) RequestWithdrawal(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	p, err := h.lifecycle.RequestWithdrawal(c.Context(), h.transitionRequest(c, in))
	return h.respond(c, p, err)
}

// CancelWithdrawal godoc
// @Summary      Cancelar retiro pendiente
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true   "ID del producto"
// @Param        body  body      dto.TransitionRequest  false  "versión esperada y motivo"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/withdrawal/cancel [post]
func (h *ProductHandler) CancelWithdrawal(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	p, err := h.lifecycle.CancelWithdrawal(c.Context(), h.transitionRequest(c, in))
	return h.respond(c, p, err)
}

// ConfirmWithdrawal godoc
// @Summary      Confirmar retiro
// @Description  Sin quantity el retiro es total y libera la ubicación; con quantity es parcial.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                        true   "ID del producto"
// @Param        body  body      dto.ConfirmWithdrawalRequest  false  "cantidad parcial"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/withdrawal/confirm [post]
func (h *ProductHandler) ConfirmWithdrawal(c *fiber.Ctx) error {
	var in dto.ConfirmWithdrawalRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	p, err := h.lifecycle.ConfirmWithdrawal(c.Context(), h.transitionRequest(c, in.TransitionRequest), in.Quantity)
	return h.respond(c, p, err)
}

// Remove godoc
// @Summary      Dar de baja producto
// @Description  Libera la capacidad de la ubicación en la misma transacción.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true   "ID del producto"
// @Param        body  body      dto.TransitionRequest  false  "versión esperada y motivo"
// @Success      200   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/remove [post]
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return invalidBody(c)
	}
	p, err := h.lifecycle.Remove(c.Context(), h.transitionRequest(c, in))
	return h.respond(c, p, err)
}

// Movements godoc
// @Summary      Movimientos de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id      path      string  true   "ID del producto"
// @Param        limit   query     int     false  "límite (defecto 50)"
// @Param        offset  query     int     false  "desplazamiento"
// @Success      200     {object}  dto.MovementListResponse
// @Router       /api/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	pg := page(c)
	list, err := h.movements.ListByProduct(c.Context(), c.Params("id"), pg.Limit, pg.Offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementListResponse(list, pg))
}
