package authRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"CafeInventory/internal/api/auth"
	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type UserDB struct {
	ID        string         `db:"id"`
	Email     string         `db:"email"`
	Username  string         `db:"username"`
	Password  string         `db:"password"`
	FirstName string         `db:"first_name"`
	LastName  sql.NullString `db:"last_name"`
	Role      string         `db:"role"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func (d UserDB) toEntity() entity.User {
	return entity.User{
		ID:        d.ID,
		Email:     d.Email,
		Username:  d.Username,
		Password:  d.Password,
		FirstName: d.FirstName,
		LastName:  d.LastName.String,
		Role:      d.Role,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user entity.User) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"password":   user.Password,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUser")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating user")
		return err
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (entity.User, error) {
	return r.getUser(ctx, queryGetUserByID, map[string]interface{}{"id": id})
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (entity.User, error) {
	return r.getUser(ctx, queryGetUserByEmail, map[string]interface{}{"email": email})
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (entity.User, error) {
	return r.getUser(ctx, queryGetUserByUsername, map[string]interface{}{"username": username})
}

func (r *userRepository) getUser(ctx context.Context, namedQuery string, argsKV map[string]interface{}) (entity.User, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var userDB UserDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("User named query preparation err")
		return entity.User{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&userDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, auth.ErrUserNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching user")
		return entity.User{}, err
	}

	return userDB.toEntity(), nil
}
