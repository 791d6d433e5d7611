package inventoryRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"CafeInventory/internal/api/inventory"
	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ItemDB struct {
	ID                  string          `db:"id"`
	Name                string          `db:"name"`
	Quantity            float64         `db:"quantity"`
	UnitOfMeasureID     sql.NullString  `db:"unit_of_measure_id"`
	Par                 float64         `db:"par"`
	ReorderPoint        float64         `db:"reorder_point"`
	StockCheckFrequency int             `db:"stock_check_frequency"`
	Description         sql.NullString  `db:"description"`
	LeadTime            sql.NullInt64   `db:"lead_time"`
	Brands              sql.NullString  `db:"brands"`
	Notes               sql.NullString  `db:"notes"`
	CurrentCost         sql.NullFloat64 `db:"current_cost"`
	CreatedAt           time.Time       `db:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at"`
}

func (d ItemDB) toEntity() entity.Item {
	return entity.Item{
		ID:                  d.ID,
		Name:                d.Name,
		Quantity:            d.Quantity,
		UnitOfMeasureID:     d.UnitOfMeasureID.String,
		Par:                 d.Par,
		ReorderPoint:        d.ReorderPoint,
		StockCheckFrequency: d.StockCheckFrequency,
		Description:         d.Description.String,
		LeadTime:            int(d.LeadTime.Int64),
		Brands:              d.Brands.String,
		Notes:               d.Notes.String,
		CurrentCost:         d.CurrentCost.Float64,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func itemArgs(item entity.Item) map[string]interface{} {
	return map[string]interface{}{
		"id":                    item.ID,
		"name":                  item.Name,
		"quantity":              item.Quantity,
		"unit_of_measure_id":    item.UnitOfMeasureID,
		"par":                   item.Par,
		"reorder_point":         item.ReorderPoint,
		"stock_check_frequency": item.StockCheckFrequency,
		"description":           item.Description,
		"lead_time":             item.LeadTime,
		"brands":                item.Brands,
		"notes":                 item.Notes,
		"current_cost":          item.CurrentCost,
		"created_at":            item.CreatedAt,
		"updated_at":            item.UpdatedAt,
	}
}

func (r *itemRepository) CreateItem(ctx context.Context, item entity.Item) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateItem, itemArgs(item))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateItem")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating item")
		return err
	}

	return nil
}

func (r *itemRepository) GetItemByID(ctx context.Context, id string) (entity.Item, error) {
	return r.getItem(ctx, queryGetItemByID, map[string]interface{}{"id": id})
}

func (r *itemRepository) GetItemByName(ctx context.Context, name string) (entity.Item, error) {
	return r.getItem(ctx, queryGetItemByName, map[string]interface{}{"name": name})
}

func (r *itemRepository) getItem(ctx context.Context, namedQuery string, argsKV map[string]interface{}) (entity.Item, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var itemDB ItemDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Item named query preparation err")
		return entity.Item{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&itemDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Item{}, inventory.ErrItemNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching item")
		return entity.Item{}, err
	}

	return itemDB.toEntity(), nil
}

func (r *itemRepository) GetAllItems(ctx context.Context) ([]entity.Item, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var itemsDB []ItemDB

	query := r.q.Rebind(queryGetAllItems)
	if err := r.q.SelectContext(ctx, &itemsDB, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing items")
		return nil, err
	}

	items := make([]entity.Item, 0, len(itemsDB))
	for _, d := range itemsDB {
		items = append(items, d.toEntity())
	}

	return items, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item entity.Item) error {
	requestID := contextPkg.GetRequestID(ctx)

	item.UpdatedAt = time.Now()

	query, args, err := sqlx.Named(queryUpdateItem, itemArgs(item))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateItem")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating item")
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}

func (r *itemRepository) UpdateItemQuantity(ctx context.Context, id string, quantity float64) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         id,
		"quantity":   quantity,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateItemQuantity, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateItemQuantity")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating item quantity")
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}

func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteItem, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteItem")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting item")
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}
