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

type UnitOfMeasureDB struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Abbreviation sql.NullString `db:"abbreviation"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (d UnitOfMeasureDB) toEntity() entity.UnitOfMeasure {
	return entity.UnitOfMeasure{
		ID:           d.ID,
		Name:         d.Name,
		Abbreviation: d.Abbreviation.String,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *uomRepository) CreateUnitOfMeasure(ctx context.Context, uom entity.UnitOfMeasure) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           uom.ID,
		"name":         uom.Name,
		"abbreviation": uom.Abbreviation,
		"created_at":   uom.CreatedAt,
		"updated_at":   uom.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUnitOfMeasure, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUnitOfMeasure")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating unit of measure")
		return err
	}

	return nil
}

func (r *uomRepository) GetUnitOfMeasureByID(ctx context.Context, id string) (entity.UnitOfMeasure, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var uomDB UnitOfMeasureDB

	query, args, err := sqlx.Named(queryGetUnitOfMeasureByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetUnitOfMeasureByID named query preparation err")
		return entity.UnitOfMeasure{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&uomDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.UnitOfMeasure{}, inventory.ErrUnitOfMeasureNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching unit of measure")
		return entity.UnitOfMeasure{}, err
	}

	return uomDB.toEntity(), nil
}

func (r *uomRepository) GetAllUnitsOfMeasure(ctx context.Context) ([]entity.UnitOfMeasure, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var uomsDB []UnitOfMeasureDB

	query := r.q.Rebind(queryGetAllUnitsOfMeasure)
	if err := r.q.SelectContext(ctx, &uomsDB, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing units of measure")
		return nil, err
	}

	uoms := make([]entity.UnitOfMeasure, 0, len(uomsDB))
	for _, d := range uomsDB {
		uoms = append(uoms, d.toEntity())
	}

	return uoms, nil
}
