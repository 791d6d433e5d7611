package inventory

import "time"

type CreateItemRequest struct {
	Name                string  `json:"name" validate:"required,min=1,max=255"`
	Quantity            float64 `json:"quantity" validate:"gte=0"`
	UnitOfMeasureID     string  `json:"unit_of_measure_id" validate:"required"`
	Par                 float64 `json:"par" validate:"gte=0"`
	ReorderPoint        float64 `json:"reorder_point" validate:"gte=0"`
	StockCheckFrequency int     `json:"stock_check_frequency" validate:"gte=0"`
	Description         string  `json:"description,omitempty"`
	LeadTime            int     `json:"lead_time,omitempty"`
	Brands              string  `json:"brands,omitempty"`
	Notes               string  `json:"notes,omitempty"`
	CurrentCost         float64 `json:"current_cost,omitempty"`
}

type UpdateItemRequest struct {
	Name                string   `json:"name,omitempty"`
	Quantity            *float64 `json:"quantity,omitempty"`
	UnitOfMeasureID     string   `json:"unit_of_measure_id,omitempty"`
	Par                 *float64 `json:"par,omitempty"`
	ReorderPoint        *float64 `json:"reorder_point,omitempty"`
	StockCheckFrequency *int     `json:"stock_check_frequency,omitempty"`
	Description         string   `json:"description,omitempty"`
	LeadTime            *int     `json:"lead_time,omitempty"`
	Brands              string   `json:"brands,omitempty"`
	Notes               string   `json:"notes,omitempty"`
	CurrentCost         *float64 `json:"current_cost,omitempty"`
}

type ItemResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Quantity            float64   `json:"quantity"`
	UnitOfMeasureID     string    `json:"unit_of_measure_id"`
	UnitOfMeasureName   string    `json:"unit_of_measure_name,omitempty"`
	Par                 float64   `json:"par"`
	ReorderPoint        float64   `json:"reorder_point"`
	StockCheckFrequency int       `json:"stock_check_frequency"`
	Description         string    `json:"description,omitempty"`
	LeadTime            int       `json:"lead_time,omitempty"`
	Brands              string    `json:"brands,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	CurrentCost         float64   `json:"current_cost,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CreateUnitOfMeasureRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

type UnitOfMeasureResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateVendorRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	PointOfContact string `json:"point_of_contact,omitempty"`
	Website        string `json:"website,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateVendorRequest struct {
	Name           string `json:"name,omitempty"`
	PointOfContact string `json:"point_of_contact,omitempty"`
	Website        string `json:"website,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
}

type VendorResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PointOfContact string    `json:"point_of_contact,omitempty"`
	Website        string    `json:"website,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
