package authService

import (
	"context"
	"errors"
	"time"

	"CafeInventory/internal/api/auth"
	"CafeInventory/internal/entity"
	contextPkg "CafeInventory/pkg/context"
	jwtPkg "CafeInventory/pkg/jwt"

	"github.com/sirupsen/logrus"
)

const accessTokenTTL = 24 * time.Hour

func (s *authService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}
	defer repo.Rollback()

	if _, err := repo.Users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, auth.ErrEmailAlreadyExists
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, err
	}

	if _, err := repo.Users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, auth.ErrUsernameAlreadyExists
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.bcrypt.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return nil, err
	}

	userID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := entity.User{
		ID:        userID,
		Email:     req.Email,
		Username:  req.Username,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "staff",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := repo.Commit(); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User registered")

	return userToResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	user, err := repo.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, auth.ErrInvalidEmailOrPassword
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, auth.ErrUserInactive
	}

	if err := s.bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, auth.ErrInvalidEmailOrPassword
	}

	accessToken, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
	}, accessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return nil, err
	}

	return &auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        *userToResponse(user),
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*auth.UserResponse, error) {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	user, err := repo.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return userToResponse(user), nil
}

func userToResponse(user entity.User) *auth.UserResponse {
	return &auth.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
