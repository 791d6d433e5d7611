package inventoryService

import (
	"context"
	"errors"
	"time"

	"CafeInventory/internal/api/inventory"
	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *inventoryService) CreateItem(ctx context.Context, req inventory.CreateItemRequest) (*inventory.ItemResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	if _, err := repo.Items.GetItemByName(ctx, req.Name); err == nil {
		return nil, inventory.ErrItemAlreadyExists
	} else if !errors.Is(err, inventory.ErrItemNotFound) {
		return nil, err
	}

	uom, err := repo.UnitsOfMeasure.GetUnitOfMeasureByID(ctx, req.UnitOfMeasureID)
	if err != nil {
		return nil, err
	}

	itemID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := entity.Item{
		ID:                  itemID,
		Name:                req.Name,
		Quantity:            req.Quantity,
		UnitOfMeasureID:     req.UnitOfMeasureID,
		Par:                 req.Par,
		ReorderPoint:        req.ReorderPoint,
		StockCheckFrequency: req.StockCheckFrequency,
		Description:         req.Description,
		LeadTime:            req.LeadTime,
		Brands:              req.Brands,
		Notes:               req.Notes,
		CurrentCost:         req.CurrentCost,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := repo.Items.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	resp := itemToResponse(item)
	resp.UnitOfMeasureName = uom.Name
	return &resp, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id string) (*inventory.ItemResponse, error) {
	repo, err := s.inventoryRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	item, err := repo.Items.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := itemToResponse(item)
	if item.UnitOfMeasureID != "" {
		if uom, err := repo.UnitsOfMeasure.GetUnitOfMeasureByID(ctx, item.UnitOfMeasureID); err == nil {
			resp.UnitOfMeasureName = uom.Name
		}
	}

	return &resp, nil
}

func (s *inventoryService) GetAllItems(ctx context.Context) ([]inventory.ItemResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	items, err := repo.Items.GetAllItems(ctx)
	if err != nil {
		return nil, err
	}

	uoms, err := repo.UnitsOfMeasure.GetAllUnitsOfMeasure(ctx)
	if err != nil {
		return nil, err
	}

	uomNames := make(map[string]string, len(uoms))
	for _, u := range uoms {
		uomNames[u.ID] = u.Name
	}

	responses := make([]inventory.ItemResponse, 0, len(items))
	for _, item := range items {
		resp := itemToResponse(item)
		resp.UnitOfMeasureName = uomNames[item.UnitOfMeasureID]
		responses = append(responses, resp)
	}

	return responses, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id string, req inventory.UpdateItemRequest) (*inventory.ItemResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	item, err := repo.Items.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyItemUpdate(&item, req)

	if req.Quantity != nil && *req.Quantity < 0 {
		return nil, inventory.ErrInvalidQuantity
	}

	if req.UnitOfMeasureID != "" {
		if _, err := repo.UnitsOfMeasure.GetUnitOfMeasureByID(ctx, req.UnitOfMeasureID); err != nil {
			return nil, err
		}
	}

	if err := repo.Items.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	resp := itemToResponse(item)
	return &resp, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if err := repo.Items.DeleteItem(ctx, id); err != nil {
		return err
	}

	return repo.Commit()
}

func (s *inventoryService) CreateUnitOfMeasure(ctx context.Context, req inventory.CreateUnitOfMeasureRequest) (*inventory.UnitOfMeasureResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	uomID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	uom := entity.UnitOfMeasure{
		ID:           uomID,
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := repo.UnitsOfMeasure.CreateUnitOfMeasure(ctx, uom); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	return &inventory.UnitOfMeasureResponse{
		ID:           uom.ID,
		Name:         uom.Name,
		Abbreviation: uom.Abbreviation,
		CreatedAt:    uom.CreatedAt,
	}, nil
}

func (s *inventoryService) GetAllUnitsOfMeasure(ctx context.Context) ([]inventory.UnitOfMeasureResponse, error) {
	repo, err := s.inventoryRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	uoms, err := repo.UnitsOfMeasure.GetAllUnitsOfMeasure(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]inventory.UnitOfMeasureResponse, 0, len(uoms))
	for _, uom := range uoms {
		responses = append(responses, inventory.UnitOfMeasureResponse{
			ID:           uom.ID,
			Name:         uom.Name,
			Abbreviation: uom.Abbreviation,
			CreatedAt:    uom.CreatedAt,
		})
	}

	return responses, nil
}

func (s *inventoryService) CreateVendor(ctx context.Context, req inventory.CreateVendorRequest) (*inventory.VendorResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	vendorID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	vendor := entity.Vendor{
		ID:             vendorID,
		Name:           req.Name,
		PointOfContact: req.PointOfContact,
		Website:        req.Website,
		Notes:          req.Notes,
		Address:        req.Address,
		Phone:          req.Phone,
		Email:          req.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := repo.Vendors.CreateVendor(ctx, vendor); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	resp := vendorToResponse(vendor)
	return &resp, nil
}

func (s *inventoryService) GetVendor(ctx context.Context, id string) (*inventory.VendorResponse, error) {
	repo, err := s.inventoryRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	vendor, err := repo.Vendors.GetVendorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := vendorToResponse(vendor)
	return &resp, nil
}

func (s *inventoryService) GetAllVendors(ctx context.Context) ([]inventory.VendorResponse, error) {
	repo, err := s.inventoryRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	vendors, err := repo.Vendors.GetAllVendors(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]inventory.VendorResponse, 0, len(vendors))
	for _, vendor := range vendors {
		responses = append(responses, vendorToResponse(vendor))
	}

	return responses, nil
}

func (s *inventoryService) UpdateVendor(ctx context.Context, id string, req inventory.UpdateVendorRequest) (*inventory.VendorResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	vendor, err := repo.Vendors.GetVendorByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyVendorUpdate(&vendor, req)

	if err := repo.Vendors.UpdateVendor(ctx, vendor); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	resp := vendorToResponse(vendor)
	return &resp, nil
}

func (s *inventoryService) DeleteVendor(ctx context.Context, id string) error {
	repo, err := s.inventoryRepo.NewClient(true)
	if err != nil {
		return err
	}
	defer repo.Rollback()

	if err := repo.Vendors.DeleteVendor(ctx, id); err != nil {
		return err
	}

	return repo.Commit()
}

func itemToResponse(item entity.Item) inventory.ItemResponse {
	return inventory.ItemResponse{
		ID:                  item.ID,
		Name:                item.Name,
		Quantity:            item.Quantity,
		UnitOfMeasureID:     item.UnitOfMeasureID,
		Par:                 item.Par,
		ReorderPoint:        item.ReorderPoint,
		StockCheckFrequency: item.StockCheckFrequency,
		Description:         item.Description,
		LeadTime:            item.LeadTime,
		Brands:              item.Brands,
		Notes:               item.Notes,
		CurrentCost:         item.CurrentCost,
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}
}

func vendorToResponse(vendor entity.Vendor) inventory.VendorResponse {
	return inventory.VendorResponse{
		ID:             vendor.ID,
		Name:           vendor.Name,
		PointOfContact: vendor.PointOfContact,
		Website:        vendor.Website,
		Notes:          vendor.Notes,
		Address:        vendor.Address,
		Phone:          vendor.Phone,
		Email:          vendor.Email,
		CreatedAt:      vendor.CreatedAt,
		UpdatedAt:      vendor.UpdatedAt,
	}
}

func applyItemUpdate(item *entity.Item, req inventory.UpdateItemRequest) {
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitOfMeasureID != "" {
		item.UnitOfMeasureID = req.UnitOfMeasureID
	}
	if req.Par != nil {
		item.Par = *req.Par
	}
	if req.ReorderPoint != nil {
		item.ReorderPoint = *req.ReorderPoint
	}
	if req.StockCheckFrequency != nil {
		item.StockCheckFrequency = *req.StockCheckFrequency
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.LeadTime != nil {
		item.LeadTime = *req.LeadTime
	}
	if req.Brands != "" {
		item.Brands = req.Brands
	}
	if req.Notes != "" {
		item.Notes = req.Notes
	}
	if req.CurrentCost != nil {
		item.CurrentCost = *req.CurrentCost
	}
}

func applyVendorUpdate(vendor *entity.Vendor, req inventory.UpdateVendorRequest) {
	if req.Name != "" {
		vendor.Name = req.Name
	}
	if req.PointOfContact != "" {
		vendor.PointOfContact = req.PointOfContact
	}
	if req.Website != "" {
		vendor.Website = req.Website
	}
	if req.Notes != "" {
		vendor.Notes = req.Notes
	}
	if req.Address != "" {
		vendor.Address = req.Address
	}
	if req.Phone != "" {
		vendor.Phone = req.Phone
	}
	if req.Email != "" {
		vendor.Email = req.Email
	}
}
