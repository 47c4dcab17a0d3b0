package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bancosemillas-api/internal/application/inventory"
	"github.com/jhoicas/bancosemillas-api/internal/application/usecase"
	"github.com/jhoicas/bancosemillas-api/internal/domain/entity"
	"github.com/jhoicas/bancosemillas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Lifecycle   *inventory.LifecycleUseCase
	Batch       *inventory.BatchUseCase
	Movements   *inventory.MovementUseCase
	Withdrawals *inventory.WithdrawalUseCase
	Locations   *usecase.LocationUseCase
	Catalogs    *usecase.CatalogUseCase
	Log         *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleOperador)

	// Products
	productHandler := NewProductHandler(deps.Lifecycle, deps.Batch, deps.Movements, log.Named("products"))
	products := api.Group("/products", anyRole)
	products.Post("/", productHandler.Register)
	products.Post("/batch", productHandler.CreateBatch)
	products.Get("/batch/:batchId", productHandler.ListBatch)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/locate", productHandler.Locate)
	products.Post("/:id/move", productHandler.Move)
	products.Post("/:id/withdrawal/request", productHandler.RequestWithdrawal)
	products.Post("/:id/withdrawal/cancel", productHandler.CancelWithdrawal)
	products.Post("/:id/withdrawal/confirm", productHandler.ConfirmWithdrawal)
	products.Post("/:id/remove", productHandler.Remove)
	products.Get("/:id/movements", productHandler.Movements)

	// Movements
	movementHandler := NewMovementHandler(deps.Movements, log.Named("movements"))
	movements := api.Group("/movements", anyRole)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)
	movements.Get("/user/:id", movementHandler.ListByUser)
	movements.Post("/:id/verify", movementHandler.Verify)
	movements.Post("/:id/cancel", movementHandler.Cancel)

	// Withdrawal requests: admin solicita, admin u operador confirma
	withdrawalHandler := NewWithdrawalHandler(deps.Withdrawals, log.Named("withdrawals"))
	withdrawals := api.Group("/withdrawal-requests")
	withdrawals.Post("/", adminOnly, withdrawalHandler.Create)
	withdrawals.Get("/pending", anyRole, withdrawalHandler.ListPending)
	withdrawals.Get("/:id", anyRole, withdrawalHandler.GetByID)
	withdrawals.Post("/:id/confirm", anyRole, withdrawalHandler.Confirm)
	withdrawals.Post("/:id/cancel", anyRole, withdrawalHandler.Cancel)

	// Chambers & locations
	locationHandler := NewLocationHandler(deps.Locations, log.Named("locations"))
	chambers := api.Group("/chambers")
	chambers.Post("/", adminOnly, locationHandler.CreateChamber)
	chambers.Get("/", anyRole, locationHandler.ListChambers)
	chambers.Post("/:id/locations", adminOnly, locationHandler.CreateLocation)
	chambers.Post("/:id/locations/generate", adminOnly, locationHandler.GenerateLocations)
	chambers.Get("/:id/locations", anyRole, locationHandler.ListByChamber)

	locations := api.Group("/locations", anyRole)
	locations.Get("/:id", locationHandler.GetCapacity)
	locations.Get("/:id/movements", movementHandler.ListByLocation)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.Catalogs, log.Named("catalogs"))
	seedTypes := api.Group("/seed-types")
	seedTypes.Post("/", adminOnly, catalogHandler.CreateSeedType)
	seedTypes.Get("/", anyRole, catalogHandler.ListSeedTypes)
	clients := api.Group("/clients")
	clients.Post("/", adminOnly, catalogHandler.CreateClient)
	clients.Get("/", anyRole, catalogHandler.ListClients)
}
