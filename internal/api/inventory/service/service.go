package inventoryService

import (
	"context"

	"CafeInventory/internal/api/inventory"
	inventoryRepository "CafeInventory/internal/api/inventory/repository"
	"CafeInventory/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IInventoryService interface {
	CreateItem(ctx context.Context, req inventory.CreateItemRequest) (*inventory.ItemResponse, error)
	GetItem(ctx context.Context, id string) (*inventory.ItemResponse, error)
	GetAllItems(ctx context.Context) ([]inventory.ItemResponse, error)
	UpdateItem(ctx context.Context, id string, req inventory.UpdateItemRequest) (*inventory.ItemResponse, error)
	DeleteItem(ctx context.Context, id string) error

	CreateUnitOfMeasure(ctx context.Context, req inventory.CreateUnitOfMeasureRequest) (*inventory.UnitOfMeasureResponse, error)
	GetAllUnitsOfMeasure(ctx context.Context) ([]inventory.UnitOfMeasureResponse, error)

	CreateVendor(ctx context.Context, req inventory.CreateVendorRequest) (*inventory.VendorResponse, error)
	GetVendor(ctx context.Context, id string) (*inventory.VendorResponse, error)
	GetAllVendors(ctx context.Context) ([]inventory.VendorResponse, error)
	UpdateVendor(ctx context.Context, id string, req inventory.UpdateVendorRequest) (*inventory.VendorResponse, error)
	DeleteVendor(ctx context.Context, id string) error
}

type inventoryService struct {
	log           *logrus.Logger
	inventoryRepo inventoryRepository.Repository
	utils         utils.IUtils
}

func NewInventoryService(
	log *logrus.Logger,
	inventoryRepo inventoryRepository.Repository,
	utils utils.IUtils,
) IInventoryService {
	return &inventoryService{
		log:           log,
		inventoryRepo: inventoryRepo,
		utils:         utils,
	}
}
