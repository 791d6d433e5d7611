package auth

import "CafeInventory/pkg/response"

var (
	ErrUserNotFound           = response.NewError(404, "user not found")
	ErrEmailAlreadyExists     = response.NewError(409, "email already in use")
	ErrUsernameAlreadyExists  = response.NewError(409, "username already in use")
	ErrInvalidEmailOrPassword = response.NewError(400, "invalid email or password")
	ErrUserInactive           = response.NewError(403, "user account is deactivated")
)
