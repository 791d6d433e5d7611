package inventoryHandler

import (
	inventoryService "CafeInventory/internal/api/inventory/service"
	"CafeInventory/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type InventoryHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	inventoryService inventoryService.IInventoryService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	inventoryService inventoryService.IInventoryService,
) *InventoryHandler {
	return &InventoryHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		inventoryService: inventoryService,
	}
}

func (h *InventoryHandler) Start(srv fiber.Router) {
	inventory := srv.Group("/inventory")

	items := inventory.Group("/items")

	items.Post("/", h.middleware.NewTokenMiddleware, h.CreateItem)
	items.Get("/", h.middleware.NewTokenMiddleware, h.GetAllItems)
	items.Get("/:id", h.middleware.NewTokenMiddleware, h.GetItem)
	items.Patch("/:id", h.middleware.NewTokenMiddleware, h.UpdateItem)
	items.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteItem)

	uoms := inventory.Group("/units")

	uoms.Post("/", h.middleware.NewTokenMiddleware, h.CreateUnitOfMeasure)
	uoms.Get("/", h.middleware.NewTokenMiddleware, h.GetAllUnitsOfMeasure)

	vendors := inventory.Group("/vendors")

	vendors.Post("/", h.middleware.NewTokenMiddleware, h.CreateVendor)
	vendors.Get("/", h.middleware.NewTokenMiddleware, h.GetAllVendors)
	vendors.Get("/:id", h.middleware.NewTokenMiddleware, h.GetVendor)
	vendors.Patch("/:id", h.middleware.NewTokenMiddleware, h.UpdateVendor)
	vendors.Delete("/:id", h.middleware.NewTokenMiddleware, h.DeleteVendor)
}
