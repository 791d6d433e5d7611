package inventoryRepository

import (
	"context"

	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *countRepository) CreateInventoryCount(ctx context.Context, count entity.InventoryCount) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         count.ID,
		"item_id":    count.ItemID,
		"user_id":    count.UserID,
		"count":      count.Count,
		"counted_at": count.CountedAt,
		"created_at": count.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateInventoryCount, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateInventoryCount")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating inventory count")
		return err
	}

	return nil
}
