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

type VendorDB struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	PointOfContact sql.NullString `db:"point_of_contact"`
	Website        sql.NullString `db:"website"`
	Notes          sql.NullString `db:"notes"`
	Address        sql.NullString `db:"address"`
	Phone          sql.NullString `db:"phone"`
	Email          sql.NullString `db:"email"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (d VendorDB) toEntity() entity.Vendor {
	return entity.Vendor{
		ID:             d.ID,
		Name:           d.Name,
		PointOfContact: d.PointOfContact.String,
		Website:        d.Website.String,
		Notes:          d.Notes.String,
		Address:        d.Address.String,
		Phone:          d.Phone.String,
		Email:          d.Email.String,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func vendorArgs(vendor entity.Vendor) map[string]interface{} {
	return map[string]interface{}{
		"id":               vendor.ID,
		"name":             vendor.Name,
		"point_of_contact": vendor.PointOfContact,
		"website":          vendor.Website,
		"notes":            vendor.Notes,
		"address":          vendor.Address,
		"phone":            vendor.Phone,
		"email":            vendor.Email,
		"created_at":       vendor.CreatedAt,
		"updated_at":       vendor.UpdatedAt,
	}
}

func (r *vendorRepository) CreateVendor(ctx context.Context, vendor entity.Vendor) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateVendor, vendorArgs(vendor))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateVendor")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating vendor")
		return err
	}

	return nil
}

func (r *vendorRepository) GetVendorByID(ctx context.Context, id string) (entity.Vendor, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var vendorDB VendorDB

	query, args, err := sqlx.Named(queryGetVendorByID, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetVendorByID named query preparation err")
		return entity.Vendor{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&vendorDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Vendor{}, inventory.ErrVendorNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching vendor")
		return entity.Vendor{}, err
	}

	return vendorDB.toEntity(), nil
}

func (r *vendorRepository) GetAllVendors(ctx context.Context) ([]entity.Vendor, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var vendorsDB []VendorDB

	query := r.q.Rebind(queryGetAllVendors)
	if err := r.q.SelectContext(ctx, &vendorsDB, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when listing vendors")
		return nil, err
	}

	vendors := make([]entity.Vendor, 0, len(vendorsDB))
	for _, d := range vendorsDB {
		vendors = append(vendors, d.toEntity())
	}

	return vendors, nil
}

func (r *vendorRepository) UpdateVendor(ctx context.Context, vendor entity.Vendor) error {
	requestID := contextPkg.GetRequestID(ctx)

	vendor.UpdatedAt = time.Now()

	query, args, err := sqlx.Named(queryUpdateVendor, vendorArgs(vendor))
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for UpdateVendor")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when updating vendor")
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return inventory.ErrVendorNotFound
	}

	return nil
}

func (r *vendorRepository) DeleteVendor(ctx context.Context, id string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteVendor, map[string]interface{}{"id": id})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for DeleteVendor")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting vendor")
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return inventory.ErrVendorNotFound
	}

	return nil
}
