package inventoryRepository

import (
	"CafeInventory/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Items:          &itemRepository{q: sqlExecutor, log: r.log},
		UnitsOfMeasure: &uomRepository{q: sqlExecutor, log: r.log},
		Vendors:        &vendorRepository{q: sqlExecutor, log: r.log},
		Counts:         &countRepository{q: sqlExecutor, log: r.log},
		Commit:         commitFunc,
		Rollback:       rollbackFunc,
	}, nil
}

type Client struct {
	Items interface {
		CreateItem(ctx context.Context, item entity.Item) error
		GetItemByID(ctx context.Context, id string) (entity.Item, error)
		GetItemByName(ctx context.Context, name string) (entity.Item, error)
		GetAllItems(ctx context.Context) ([]entity.Item, error)
		UpdateItem(ctx context.Context, item entity.Item) error
		UpdateItemQuantity(ctx context.Context, id string, quantity float64) error
		DeleteItem(ctx context.Context, id string) error
	}

	UnitsOfMeasure interface {
		CreateUnitOfMeasure(ctx context.Context, uom entity.UnitOfMeasure) error
		GetUnitOfMeasureByID(ctx context.Context, id string) (entity.UnitOfMeasure, error)
		GetAllUnitsOfMeasure(ctx context.Context) ([]entity.UnitOfMeasure, error)
	}

	Vendors interface {
		CreateVendor(ctx context.Context, vendor entity.Vendor) error
		GetVendorByID(ctx context.Context, id string) (entity.Vendor, error)
		GetAllVendors(ctx context.Context) ([]entity.Vendor, error)
		UpdateVendor(ctx context.Context, vendor entity.Vendor) error
		DeleteVendor(ctx context.Context, id string) error
	}

	Counts interface {
		CreateInventoryCount(ctx context.Context, count entity.InventoryCount) error
	}

	Commit   func() error
	Rollback func() error
}

type itemRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type uomRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type vendorRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type countRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
