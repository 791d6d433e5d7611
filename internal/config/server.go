package config

import (
	"fmt"
	"os"

	"CafeInventory/database/postgres"
	authHandler "CafeInventory/internal/api/auth/handler"
	authRepository "CafeInventory/internal/api/auth/repository"
	authService "CafeInventory/internal/api/auth/service"
	commandHandler "CafeInventory/internal/api/command/handler"
	commandRepository "CafeInventory/internal/api/command/repository"
	commandService "CafeInventory/internal/api/command/service"
	inventoryHandler "CafeInventory/internal/api/inventory/handler"
	inventoryRepository "CafeInventory/internal/api/inventory/repository"
	inventoryService "CafeInventory/internal/api/inventory/service"
	"CafeInventory/internal/middleware"
	"CafeInventory/pkg/audio"
	"CafeInventory/pkg/bcrypt"
	"CafeInventory/pkg/gemini"
	"CafeInventory/pkg/openai"
	"CafeInventory/pkg/redis"
	"CafeInventory/pkg/s3"
	"CafeInventory/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	s3Client    s3.ItfS3
	transcriber audio.ITranscriber
	completer   commandService.Completer
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithTranscriber() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before transcriber")
		}
		s.transcriber = audio.NewTranscriptionService(os.Getenv("OPENAI_API_KEY"), s.log)
		return nil
	}
}

// WithCompleter selects the language model behind the command interpreter.
// COMMAND_LLM_PROVIDER=gemini switches to Gemini; anything else means OpenAI
// chat completions.
func WithCompleter() ServerOption {
	return func(s *Server) error {
		if os.Getenv("COMMAND_LLM_PROVIDER") == "gemini" {
			client, err := gemini.NewGeminiClient()
			if err != nil {
				if s.log != nil {
					s.log.Errorf("Failed to create Gemini client: %v", err)
				}
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}
			s.completer = client
			return nil
		}

		s.completer = openai.NewChatCompletion()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.NewAuthService(s.log, authRepo, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, s.validator, s.middleware, authServices)

	// Inventory Domain
	inventoryRepo := inventoryRepository.New(s.db, s.log)
	inventoryServices := inventoryService.NewInventoryService(s.log, inventoryRepo, s.utils)
	inventoryHandlers := inventoryHandler.New(s.log, s.validator, s.middleware, inventoryServices)

	// Command Domain
	commandRepo := commandRepository.New(s.db, s.log)
	commandServices := commandService.NewCommandService(s.log, commandRepo, inventoryRepo, s.transcriber, s.completer, s.s3Client, s.utils)
	commandHandlers := commandHandler.New(s.log, s.validator, s.middleware, commandServices, s.redisServer, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, inventoryHandlers, commandHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
