package inventory

import "CafeInventory/pkg/response"

var (
	ErrItemNotFound          = response.NewError(404, "item not found")
	ErrItemAlreadyExists     = response.NewError(409, "item with that name already exists")
	ErrUnitOfMeasureNotFound = response.NewError(404, "unit of measure not found")
	ErrVendorNotFound        = response.NewError(404, "vendor not found")
	ErrInvalidQuantity       = response.NewError(400, "quantity must not be negative")
)
