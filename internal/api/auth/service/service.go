package authService

import (
	"context"

	"CafeInventory/internal/api/auth"
	authRepository "CafeInventory/internal/api/auth/repository"
	"CafeInventory/pkg/bcrypt"
	"CafeInventory/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IAuthService interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*auth.UserResponse, error)
}

type authService struct {
	log      *logrus.Logger
	authRepo authRepository.Repository
	bcrypt   bcrypt.IBcrypt
	utils    utils.IUtils
}

func NewAuthService(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	bcrypt bcrypt.IBcrypt,
	utils utils.IUtils,
) IAuthService {
	return &authService{
		log:      log,
		authRepo: authRepo,
		bcrypt:   bcrypt,
		utils:    utils,
	}
}
