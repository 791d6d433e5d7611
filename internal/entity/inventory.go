package entity

import "time"

type Item struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	Quantity            float64   `db:"quantity"`
	UnitOfMeasureID     string    `db:"unit_of_measure_id"`
	Par                 float64   `db:"par"`
	ReorderPoint        float64   `db:"reorder_point"`
	StockCheckFrequency int       `db:"stock_check_frequency"`
	Description         string    `db:"description"`
	LeadTime            int       `db:"lead_time"`
	Brands              string    `db:"brands"`
	Notes               string    `db:"notes"`
	CurrentCost         float64   `db:"current_cost"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type UnitOfMeasure struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Abbreviation string    `db:"abbreviation"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Vendor struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	PointOfContact string    `db:"point_of_contact"`
	Website        string    `db:"website"`
	Notes          string    `db:"notes"`
	Address        string    `db:"address"`
	Phone          string    `db:"phone"`
	Email          string    `db:"email"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// InventoryCount records who set an item to what quantity and when. One row
// is written per executed command for audit.
type InventoryCount struct {
	ID        string    `db:"id"`
	ItemID    string    `db:"item_id"`
	UserID    string    `db:"user_id"`
	Count     float64   `db:"count"`
	CountedAt time.Time `db:"counted_at"`
	CreatedAt time.Time `db:"created_at"`
}
